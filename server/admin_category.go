package server

import (
	"net/http"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/policy"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type categoryRequest struct {
	Name            string  `json:"name" binding:"required,max=255"`
	Description     string  `json:"description"`
	Color           string  `json:"color" binding:"omitempty,max=7"`
	Image           string  `json:"image"`
	ParentID        *string `json:"parent_id"`
	SortOrder       int     `json:"sort_order"`
	IsActive        *bool   `json:"is_active"`
	MetaTitle       string  `json:"meta_title" binding:"omitempty,max=255"`
	MetaDescription string  `json:"meta_description"`
}

func (s *Server) ListCategories(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionViewAny, &model.Category{}) {
		respondForbidden(c)
		return
	}

	query := s.DB.Model(&model.Category{}).
		Preload("Parent").Preload("Children").
		Scopes(model.OrderedCategories)
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("is_active = ?", status == "1" || status == "true")
	}

	page, perPage := pageParams(c, defaultPerPage)
	var categories []*model.Category
	result, err := paginate(query, page, perPage, &categories)
	if err != nil {
		respondInternal(c, err)
		return
	}
	for _, cat := range categories {
		if err := s.DB.Model(&model.Article{}).
			Where("category_id = ?", cat.Id).
			Count(&cat.ArticlesCount).Error; err != nil {
			respondInternal(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) CreateCategory(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionCreate, &model.Category{}) {
		respondForbidden(c)
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if !s.validateParentCategory(c, req.ParentID, "") {
		return
	}

	slug, err := model.EnsureUniqueSlug(s.DB, "categories", "slug", model.GenerateSlug(req.Name))
	if err != nil {
		respondInternal(c, err)
		return
	}

	category := model.Category{Slug: slug, IsActive: true}
	if err := copier.Copy(&category, &req); err != nil {
		respondInternal(c, err)
		return
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.DB.Create(&category).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) GetCategory(c *gin.Context) {
	category, ok := s.findCategory(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionView, category) {
		respondForbidden(c)
		return
	}
	if err := s.DB.Preload("Parent").Preload("Children").
		First(category, "id = ?", category.Id).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) UpdateCategory(c *gin.Context) {
	category, ok := s.findCategory(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionUpdate, category) {
		respondForbidden(c)
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if !s.validateParentCategory(c, req.ParentID, category.Id) {
		return
	}

	// The slug follows the name.
	if req.Name != category.Name {
		slug, err := model.EnsureUniqueSlug(s.DB, "categories", "slug", model.GenerateSlug(req.Name))
		if err != nil {
			respondInternal(c, err)
			return
		}
		category.Slug = slug
	}
	if err := copier.Copy(category, &req); err != nil {
		respondInternal(c, err)
		return
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.DB.Save(category).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory refuses to remove a category that still has articles; that
// is a conflict, not a cascade.
func (s *Server) DeleteCategory(c *gin.Context) {
	category, ok := s.findCategory(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionDelete, category) {
		respondForbidden(c)
		return
	}

	var articleCount int64
	if err := s.DB.Model(&model.Article{}).
		Where("category_id = ?", category.Id).
		Count(&articleCount).Error; err != nil {
		respondInternal(c, err)
		return
	}
	if articleCount > 0 {
		respondConflict(c, "cannot delete category with existing articles")
		return
	}

	if err := s.DB.Delete(category).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

func (s *Server) findCategory(c *gin.Context) (*model.Category, bool) {
	var category model.Category
	err := s.DB.Where("id = ?", c.Param("id")).First(&category).Error
	if isNotFound(err) {
		respondNotFound(c, "category")
		return nil, false
	}
	if err != nil {
		respondInternal(c, err)
		return nil, false
	}
	return &category, true
}

// validateParentCategory checks the parent exists and keeps the hierarchy
// one level deep: a category with children cannot itself get a parent, and a
// category cannot be its own parent.
func (s *Server) validateParentCategory(c *gin.Context, parentID *string, selfID string) bool {
	if parentID == nil {
		return true
	}
	if selfID != "" && *parentID == selfID {
		respondFieldError(c, "parent_id", "category cannot be its own parent")
		return false
	}
	var parent model.Category
	if err := s.DB.Where("id = ?", *parentID).First(&parent).Error; err != nil {
		respondFieldError(c, "parent_id", "parent category not found")
		return false
	}
	if parent.ParentID != nil {
		respondFieldError(c, "parent_id", "categories nest one level deep")
		return false
	}
	return true
}
