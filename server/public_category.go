package server

import (
	"net/http"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/utils"
	"github.com/gin-gonic/gin"
)

const categoryPageSize = 12

// ShowCategory is the section page: the category itself, a paginated list of
// its visible articles and its active subcategories. Inactive categories
// 404.
func (s *Server) ShowCategory(c *gin.Context) {
	now := time.Now()

	var category model.Category
	err := s.DB.Scopes(model.ActiveCategories).
		Where("slug = ?", c.Param("slug")).
		First(&category).Error
	if isNotFound(err) {
		respondNotFound(c, "category")
		return
	}
	if err != nil {
		respondInternal(c, err)
		return
	}

	query := s.DB.Model(&model.Article{}).
		Scopes(model.VisibleArticles(now)).
		Where("category_id = ?", category.Id).
		Preload("User").Preload("Category").Preload("Tags")

	sort := c.DefaultQuery("sort", "latest")
	if !utils.ContainsString([]string{"latest", "popular"}, sort) {
		sort = "latest"
	}
	if sort == "popular" {
		query = query.Order("views_count desc")
	} else {
		query = query.Order("published_at desc")
	}

	page, perPage := pageParams(c, categoryPageSize)
	var articles []*model.Article
	result, err := paginate(query, page, perPage, &articles)
	if err != nil {
		respondInternal(c, err)
		return
	}

	subcategories, err := s.activeCategoriesWithCounts(
		s.DB.Where("parent_id = ?", category.Id), now)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":      category,
		"articles":      result,
		"subcategories": subcategories,
		"sort":          sort,
	})
}
