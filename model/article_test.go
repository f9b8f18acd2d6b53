package model_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAuthorAndCategory(t *testing.T, db *gorm.DB) (*model.User, *model.Category) {
	t.Helper()
	user := model.User{
		Name:   "Test Author",
		Email:  utils.RandomAlphabetString(10) + "@example.com",
		Role:   model.RoleAuthor,
		Status: model.UserStatusActive,
	}
	require.NoError(t, db.Create(&user).Error)

	category := model.Category{
		Name:     "News",
		Slug:     "news-" + utils.RandomAlphabetString(6),
		IsActive: true,
	}
	require.NoError(t, db.Create(&category).Error)
	return &user, &category
}

func seedArticle(t *testing.T, db *gorm.DB, user *model.User, category *model.Category, mutate func(*model.Article)) *model.Article {
	t.Helper()
	article := model.Article{
		Title:      "Seed Article " + utils.RandomAlphabetString(6),
		Content:    "some content",
		UserID:     user.Id,
		CategoryID: category.Id,
		Status:     model.ArticleStatusDraft,
	}
	if mutate != nil {
		mutate(&article)
	}
	require.NoError(t, db.Create(&article).Error)
	return &article
}

func TestArticleVisible(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("published in the past is visible", func(t *testing.T) {
		a := model.Article{Status: model.ArticleStatusPublished, PublishedAt: &past}
		assert.True(t, a.Visible(now))
	})

	t.Run("published without timestamp is not visible", func(t *testing.T) {
		a := model.Article{Status: model.ArticleStatusPublished}
		assert.False(t, a.Visible(now))
	})

	t.Run("published in the future is not visible", func(t *testing.T) {
		a := model.Article{Status: model.ArticleStatusPublished, PublishedAt: &future}
		assert.False(t, a.Visible(now))
	})

	t.Run("non-published statuses are never visible", func(t *testing.T) {
		for _, status := range []string{
			model.ArticleStatusDraft,
			model.ArticleStatusScheduled,
			model.ArticleStatusArchived,
		} {
			a := model.Article{Status: status, PublishedAt: &past}
			assert.False(t, a.Visible(now), status)
		}
	})

	t.Run("featured and breaking play no part", func(t *testing.T) {
		a := model.Article{Status: model.ArticleStatusDraft, PublishedAt: &past, IsFeatured: true, IsBreaking: true}
		assert.False(t, a.Visible(now))
	})
}

func TestEstimateReadingTime(t *testing.T) {
	assert.Equal(t, 0, model.EstimateReadingTime(""))
	assert.Equal(t, 1, model.EstimateReadingTime("just a few words"))
	assert.Equal(t, 1, model.EstimateReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, model.EstimateReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, 3, model.EstimateReadingTime(strings.Repeat("word ", 450)))

	// Markup does not count as words.
	assert.Equal(t, 1, model.EstimateReadingTime("<p><strong>short</strong> text</p>"))
}

func TestDeriveExcerpt(t *testing.T) {
	assert.Equal(t, "plain text", model.DeriveExcerpt("<p>plain</p> <em>text</em>"))

	long := strings.Repeat("0123456789", 20)
	excerpt := model.DeriveExcerpt(long)
	assert.True(t, strings.HasSuffix(excerpt, "..."))
	assert.Equal(t, 153, len([]rune(excerpt)))
}

func TestArticleSlugGeneration(t *testing.T) {
	db := utils.CreateTempDB(t)
	user, category := seedAuthorAndCategory(t, db)

	first := seedArticle(t, db, user, category, func(a *model.Article) {
		a.Title = "Hello World"
	})
	require.Equal(t, "hello-world", first.Slug)

	second := seedArticle(t, db, user, category, func(a *model.Article) {
		a.Title = "Hello World"
	})
	require.Equal(t, "hello-world-2", second.Slug)

	// Soft-deleted rows still occupy their slug.
	require.NoError(t, db.Delete(first).Error)
	third := seedArticle(t, db, user, category, func(a *model.Article) {
		a.Title = "Hello World"
	})
	require.Equal(t, "hello-world-3", third.Slug)
}

func TestArticleDerivedColumns(t *testing.T) {
	db := utils.CreateTempDB(t)
	user, category := seedAuthorAndCategory(t, db)

	article := seedArticle(t, db, user, category, func(a *model.Article) {
		a.Content = "<p>" + strings.Repeat("word ", 250) + "</p>"
	})
	assert.Equal(t, 2, article.ReadingTime)
	assert.NotEmpty(t, article.Excerpt)
	assert.NotContains(t, article.Excerpt, "<p>")

	// Reading time follows content on rewrite.
	article.Content = strings.Repeat("word ", 900)
	require.NoError(t, db.Save(article).Error)
	assert.Equal(t, 5, article.ReadingTime)

	// An explicit excerpt wins over the derived one.
	withExcerpt := seedArticle(t, db, user, category, func(a *model.Article) {
		a.Excerpt = "hand written teaser"
	})
	assert.Equal(t, "hand written teaser", withExcerpt.Excerpt)
}
