package server

import (
	"net/http"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	homeBreakingLimit = 3
	homeFeaturedLimit = 6
	homeLatestLimit   = 12
	homePopularLimit  = 5
	popularWindowDays = 7
)

// Home assembles the front page: breaking, featured, latest and popular
// stories plus the active categories with their published article counts.
// Every list goes through the same visibility gate.
func (s *Server) Home(c *gin.Context) {
	now := time.Now()
	visible := model.VisibleArticles(now)

	var breaking []*model.Article
	if err := s.DB.Scopes(visible, model.BreakingArticles).
		Preload("User").Preload("Category").
		Order("published_at desc").Limit(homeBreakingLimit).
		Find(&breaking).Error; err != nil {
		respondInternal(c, err)
		return
	}

	var featured []*model.Article
	if err := s.DB.Scopes(visible, model.FeaturedArticles).
		Preload("User").Preload("Category").
		Order("published_at desc").Limit(homeFeaturedLimit).
		Find(&featured).Error; err != nil {
		respondInternal(c, err)
		return
	}

	var latest []*model.Article
	if err := s.DB.Scopes(visible).
		Preload("User").Preload("Category").Preload("Tags").
		Order("published_at desc").Limit(homeLatestLimit).
		Find(&latest).Error; err != nil {
		respondInternal(c, err)
		return
	}

	// Most viewed among recently created stories.
	var popular []*model.Article
	if err := s.DB.Scopes(visible).
		Preload("User").Preload("Category").
		Where("created_at >= ?", now.AddDate(0, 0, -popularWindowDays)).
		Order("views_count desc").Limit(homePopularLimit).
		Find(&popular).Error; err != nil {
		respondInternal(c, err)
		return
	}

	categories, err := s.activeCategoriesWithCounts(s.DB.Where("parent_id IS NULL"), now)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"breaking_news":     breaking,
		"featured_articles": featured,
		"latest_articles":   latest,
		"popular_articles":  popular,
		"categories":        categories,
	})
}

// activeCategoriesWithCounts lists active categories in display order, each
// with the number of visible articles filed under it.
func (s *Server) activeCategoriesWithCounts(base *gorm.DB, now time.Time) ([]*model.Category, error) {
	var categories []*model.Category
	if err := base.Scopes(model.ActiveCategories, model.OrderedCategories).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	for _, cat := range categories {
		if err := s.DB.Model(&model.Article{}).
			Scopes(model.VisibleArticles(now)).
			Where("category_id = ?", cat.Id).
			Count(&cat.ArticlesCount).Error; err != nil {
			return nil, err
		}
	}
	return categories, nil
}
