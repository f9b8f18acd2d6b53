package server

import (
	"net/http"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/policy"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type tagRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"omitempty,max=7"`
	IsActive    *bool  `json:"is_active"`
}

func (s *Server) ListTags(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionViewAny, &model.Tag{}) {
		respondForbidden(c)
		return
	}

	query := s.DB.Model(&model.Tag{}).Order("name asc")
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("is_active = ?", status == "1" || status == "true")
	}

	page, perPage := pageParams(c, defaultPerPage)
	var tags []*model.Tag
	result, err := paginate(query, page, perPage, &tags)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) CreateTag(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionCreate, &model.Tag{}) {
		respondForbidden(c)
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	slug, err := model.EnsureUniqueSlug(s.DB, "tags", "slug", model.GenerateSlug(req.Name))
	if err != nil {
		respondInternal(c, err)
		return
	}

	tag := model.Tag{Slug: slug, IsActive: true}
	if err := copier.Copy(&tag, &req); err != nil {
		respondInternal(c, err)
		return
	}
	if req.IsActive != nil {
		tag.IsActive = *req.IsActive
	}

	if err := s.DB.Create(&tag).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (s *Server) UpdateTag(c *gin.Context) {
	tag, ok := s.findTag(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionUpdate, tag) {
		respondForbidden(c)
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if req.Name != tag.Name {
		slug, err := model.EnsureUniqueSlug(s.DB, "tags", "slug", model.GenerateSlug(req.Name))
		if err != nil {
			respondInternal(c, err)
			return
		}
		tag.Slug = slug
	}
	if err := copier.Copy(tag, &req); err != nil {
		respondInternal(c, err)
		return
	}
	if req.IsActive != nil {
		tag.IsActive = *req.IsActive
	}

	if err := s.DB.Save(tag).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (s *Server) DeleteTag(c *gin.Context) {
	tag, ok := s.findTag(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionDelete, tag) {
		respondForbidden(c)
		return
	}
	if err := s.DB.Delete(tag).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted successfully"})
}

func (s *Server) findTag(c *gin.Context) (*model.Tag, bool) {
	var tag model.Tag
	err := s.DB.Where("id = ?", c.Param("id")).First(&tag).Error
	if isNotFound(err) {
		respondNotFound(c, "tag")
		return nil, false
	}
	if err != nil {
		respondInternal(c, err)
		return nil, false
	}
	return &tag, true
}
