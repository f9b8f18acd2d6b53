package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Lukiyanto/cisaroni-news/file_store"
	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/server/middlewares"
	"github.com/Lukiyanto/cisaroni-news/utils"
	"github.com/Lukiyanto/cisaroni-news/utils/dotenv"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	gin.SetMode(gin.TestMode)
	middlewares.Setup()
	os.Exit(m.Run())
}

type testEnv struct {
	db     *gorm.DB
	files  *file_store.FakeStore
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := utils.CreateTempDB(t)
	files := file_store.NewFakeStore()
	return &testEnv{db: db, files: files, router: NewRouter(db, files)}
}

func (e *testEnv) createUser(t *testing.T, role string) *model.User {
	t.Helper()
	user := &model.User{
		Name:   "Test " + role,
		Email:  utils.RandomAlphabetString(10) + "@example.com",
		Role:   role,
		Status: model.UserStatusActive,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createCategory(t *testing.T) *model.Category {
	t.Helper()
	category := &model.Category{
		Name:     "Category " + utils.RandomAlphabetString(6),
		Slug:     "category-" + utils.RandomAlphabetString(6),
		IsActive: true,
	}
	require.NoError(t, e.db.Create(category).Error)
	return category
}

// createPublishedArticle seeds an article that passes the visibility
// predicate.
func (e *testEnv) createPublishedArticle(t *testing.T, user *model.User, category *model.Category) *model.Article {
	t.Helper()
	publishedAt := time.Now().Add(-time.Hour)
	article := &model.Article{
		Title:       "Published " + utils.RandomAlphabetString(6),
		Content:     "published content",
		UserID:      user.Id,
		CategoryID:  category.Id,
		Status:      model.ArticleStatusPublished,
		PublishedAt: &publishedAt,
	}
	require.NoError(t, e.db.Create(article).Error)
	return article
}

// request performs an in-process HTTP request, optionally authenticated as
// actor via a real signed token.
func (e *testEnv) request(t *testing.T, method, path string, body interface{}, actor *model.User) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		token, err := middlewares.IssueToken(actor.Id, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
