package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/server/middlewares"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadFiles posts a multipart form with the given files under the "files"
// field.
func (e *testEnv) uploadFiles(t *testing.T, actor *model.User, names map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, content := range names {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/admin/media", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	token, err := middlewares.IssueToken(actor.Id, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestUploadMedia(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, model.RoleAuthor)

	w := env.uploadFiles(t, author, map[string][]byte{"photo.png": []byte("png bytes")})
	require.Equal(t, http.StatusCreated, w.Code)

	var media model.Media
	require.NoError(t, env.db.Where("original_name = ?", "photo.png").First(&media).Error)
	assert.Equal(t, author.Id, media.UserID)
	assert.Equal(t, int64(len("png bytes")), media.Size)
	assert.True(t, env.files.Has(media.Path))
	assert.NotEmpty(t, media.URL)
}

func TestUploadMediaRequiresFiles(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, model.RoleAuthor)

	w := env.uploadFiles(t, author, map[string][]byte{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteMediaOwnerOrEditor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, model.RoleAuthor)
	other := env.createUser(t, model.RoleAuthor)
	editor := env.createUser(t, model.RoleEditor)

	require.Equal(t, http.StatusCreated,
		env.uploadFiles(t, owner, map[string][]byte{"a.png": []byte("a")}).Code)
	require.Equal(t, http.StatusCreated,
		env.uploadFiles(t, owner, map[string][]byte{"b.png": []byte("b")}).Code)

	var first, second model.Media
	require.NoError(t, env.db.Where("original_name = ?", "a.png").First(&first).Error)
	require.NoError(t, env.db.Where("original_name = ?", "b.png").First(&second).Error)

	// A stranger cannot delete someone else's upload.
	assert.Equal(t, http.StatusForbidden,
		env.request(t, "DELETE", "/admin/media/"+first.Id, nil, other).Code)

	// The owner can, and the stored bytes go with it.
	require.Equal(t, http.StatusOK,
		env.request(t, "DELETE", "/admin/media/"+first.Id, nil, owner).Code)
	assert.False(t, env.files.Has(first.Path))

	// Editors can delete anyone's.
	require.Equal(t, http.StatusOK,
		env.request(t, "DELETE", "/admin/media/"+second.Id, nil, editor).Code)
}

func TestUpdateMediaMetadata(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, model.RoleAuthor)

	require.Equal(t, http.StatusCreated,
		env.uploadFiles(t, owner, map[string][]byte{"c.png": []byte("c")}).Code)

	var media model.Media
	require.NoError(t, env.db.Where("original_name = ?", "c.png").First(&media).Error)

	w := env.request(t, "PUT", "/admin/media/"+media.Id,
		map[string]interface{}{"alt_text": "a photo", "caption": "taken at dawn"}, owner)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded model.Media
	require.NoError(t, env.db.First(&reloaded, "id = ?", media.Id).Error)
	assert.Equal(t, "a photo", reloaded.AltText)
	assert.Equal(t, "taken at dawn", reloaded.Caption)
}
