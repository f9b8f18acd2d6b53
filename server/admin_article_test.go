package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticleWithTags(t *testing.T) {
	env := newTestEnv(t)
	editor := env.createUser(t, model.RoleEditor)
	category := env.createCategory(t)

	tag := &model.Tag{Name: "Tech", Slug: "tech", IsActive: true}
	require.NoError(t, env.db.Create(tag).Error)

	w := env.request(t, "POST", "/admin/articles", map[string]interface{}{
		"title":       "A Fresh Story",
		"content":     "body text",
		"category_id": category.Id,
		"status":      "draft",
		"tag_ids":     []string{tag.Id},
	}, editor)
	require.Equal(t, http.StatusCreated, w.Code)

	var article model.Article
	require.NoError(t, env.db.Preload("Tags").Where("title = ?", "A Fresh Story").First(&article).Error)
	assert.Equal(t, "a-fresh-story", article.Slug)
	assert.Equal(t, editor.Id, article.UserID)
	require.Len(t, article.Tags, 1)
	assert.Equal(t, tag.Id, article.Tags[0].Id)
}

func TestCreateArticlePublishStampsNow(t *testing.T) {
	env := newTestEnv(t)
	editor := env.createUser(t, model.RoleEditor)
	category := env.createCategory(t)

	w := env.request(t, "POST", "/admin/articles", map[string]interface{}{
		"title":       "Publish Me",
		"content":     "body",
		"category_id": category.Id,
		"status":      "published",
	}, editor)
	require.Equal(t, http.StatusCreated, w.Code)

	var article model.Article
	require.NoError(t, env.db.Where("title = ?", "Publish Me").First(&article).Error)
	require.NotNil(t, article.PublishedAt)
	assert.WithinDuration(t, time.Now(), *article.PublishedAt, time.Minute)
}

func TestCreateArticleUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	editor := env.createUser(t, model.RoleEditor)

	w := env.request(t, "POST", "/admin/articles", map[string]interface{}{
		"title":       "Orphan",
		"content":     "body",
		"category_id": "no-such-category",
		"status":      "draft",
	}, editor)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateArticleRejectsBadStatus(t *testing.T) {
	env := newTestEnv(t)
	editor := env.createUser(t, model.RoleEditor)
	category := env.createCategory(t)

	w := env.request(t, "POST", "/admin/articles", map[string]interface{}{
		"title":       "Bad Status",
		"content":     "body",
		"category_id": category.Id,
		"status":      "live",
	}, editor)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateArticleForbiddenForOtherAuthor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, model.RoleAuthor)
	other := env.createUser(t, model.RoleAuthor)
	category := env.createCategory(t)
	article := env.createPublishedArticle(t, owner, category)

	w := env.request(t, "PUT", "/admin/articles/"+article.Id, map[string]interface{}{
		"title":       "Hijacked",
		"content":     "body",
		"category_id": category.Id,
		"status":      "draft",
	}, other)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListArticlesAuthorSeesOnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, model.RoleAuthor)
	editor := env.createUser(t, model.RoleEditor)
	category := env.createCategory(t)

	env.createPublishedArticle(t, author, category)
	env.createPublishedArticle(t, editor, category)

	w := env.request(t, "GET", "/admin/articles", nil, author)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["total"])

	w = env.request(t, "GET", "/admin/articles", nil, editor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["total"])
}

func TestRestoreArticleAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, model.RoleAdmin)
	editor := env.createUser(t, model.RoleEditor)
	category := env.createCategory(t)
	article := env.createPublishedArticle(t, admin, category)

	require.Equal(t, http.StatusOK,
		env.request(t, "DELETE", "/admin/articles/"+article.Id, nil, admin).Code)

	// Gone from default queries, still reachable unscoped.
	var count int64
	require.NoError(t, env.db.Model(&model.Article{}).Where("id = ?", article.Id).Count(&count).Error)
	require.Equal(t, int64(0), count)

	assert.Equal(t, http.StatusForbidden,
		env.request(t, "POST", "/admin/articles/"+article.Id+"/restore", nil, editor).Code)
	require.Equal(t, http.StatusOK,
		env.request(t, "POST", "/admin/articles/"+article.Id+"/restore", nil, admin).Code)

	var restored model.Article
	require.NoError(t, env.db.First(&restored, "id = ?", article.Id).Error)
}

func TestForceDeleteArticle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, model.RoleAdmin)
	category := env.createCategory(t)
	article := env.createPublishedArticle(t, admin, category)

	require.Equal(t, http.StatusOK,
		env.request(t, "DELETE", "/admin/articles/"+article.Id+"/force", nil, admin).Code)

	var count int64
	require.NoError(t, env.db.Unscoped().Model(&model.Article{}).
		Where("id = ?", article.Id).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAdminRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusUnauthorized,
		env.request(t, "GET", "/admin/articles", nil, nil).Code)
}

func TestListArticlesClampsPerPage(t *testing.T) {
	env := newTestEnv(t)
	editor := env.createUser(t, model.RoleEditor)

	w := env.request(t, "GET", "/admin/articles?per_page=1000", nil, editor)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(100), decodeBody(t, w)["per_page"])
}
