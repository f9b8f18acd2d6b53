package server

import (
	"net/http"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/policy"
	"github.com/gin-gonic/gin"
)

func (s *Server) ListSubscribers(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionViewAny, &model.NewsletterSubscriber{}) {
		respondForbidden(c)
		return
	}

	query := s.DB.Model(&model.NewsletterSubscriber{}).Order("subscribed_at desc")
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", pattern, pattern)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	page, perPage := pageParams(c, defaultPerPage)
	var subscribers []*model.NewsletterSubscriber
	result, err := paginate(query, page, perPage, &subscribers)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) DeleteSubscriber(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionDelete, &model.NewsletterSubscriber{}) {
		respondForbidden(c)
		return
	}

	var subscriber model.NewsletterSubscriber
	err := s.DB.Where("id = ?", c.Param("id")).First(&subscriber).Error
	if isNotFound(err) {
		respondNotFound(c, "subscriber")
		return
	}
	if err != nil {
		respondInternal(c, err)
		return
	}

	if err := s.DB.Delete(&subscriber).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscriber deleted successfully"})
}
