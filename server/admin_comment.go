package server

import (
	"net/http"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/policy"
	"github.com/gin-gonic/gin"
)

// ListComments is the moderation queue: searchable, filterable by status and
// article, newest first.
func (s *Server) ListComments(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionViewAny, &model.Comment{}) {
		respondForbidden(c)
		return
	}

	query := s.DB.Model(&model.Comment{}).
		Preload("Article").Preload("User").
		Order("created_at desc")
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("content LIKE ? OR author_name LIKE ?", pattern, pattern)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if articleID := c.Query("article_id"); articleID != "" {
		query = query.Where("article_id = ?", articleID)
	}

	page, perPage := pageParams(c, defaultPerPage)
	var comments []*model.Comment
	result, err := paginate(query, page, perPage, &comments)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) GetComment(c *gin.Context) {
	comment, ok := s.findComment(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionView, comment) {
		respondForbidden(c)
		return
	}
	if err := s.DB.
		Preload("Article").Preload("User").Preload("Parent").Preload("Replies").
		First(comment, "id = ?", comment.Id).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ApproveComment lets a comment through to the public page. Admins may do
// this at any state; a plain editor only while the comment is still pending.
func (s *Server) ApproveComment(c *gin.Context) {
	s.moderateComment(c, policy.ActionApprove, model.CommentStatusApproved)
}

// RejectComment keeps a comment off the public page, same guard as approve.
func (s *Server) RejectComment(c *gin.Context) {
	s.moderateComment(c, policy.ActionReject, model.CommentStatusRejected)
}

func (s *Server) moderateComment(c *gin.Context, action policy.Action, status string) {
	comment, ok := s.findComment(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), action, comment) {
		respondForbidden(c)
		return
	}
	if err := s.DB.Model(comment).Update("status", status).Error; err != nil {
		respondInternal(c, err)
		return
	}
	comment.Status = status
	c.JSON(http.StatusOK, comment)
}

type updateCommentRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected spam"`
}

// UpdateComment is the direct status write, including the spam
// classification. Behind the general update permission, no pending-only
// guard here.
func (s *Server) UpdateComment(c *gin.Context) {
	comment, ok := s.findComment(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionUpdate, comment) {
		respondForbidden(c)
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := s.DB.Model(comment).Update("status", req.Status).Error; err != nil {
		respondInternal(c, err)
		return
	}
	comment.Status = req.Status
	c.JSON(http.StatusOK, comment)
}

func (s *Server) DeleteComment(c *gin.Context) {
	comment, ok := s.findComment(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionDelete, comment) {
		respondForbidden(c)
		return
	}
	if err := s.DB.Delete(comment).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}

func (s *Server) findComment(c *gin.Context) (*model.Comment, bool) {
	var comment model.Comment
	err := s.DB.Where("id = ?", c.Param("id")).First(&comment).Error
	if isNotFound(err) {
		respondNotFound(c, "comment")
		return nil, false
	}
	if err != nil {
		respondInternal(c, err)
		return nil, false
	}
	return &comment, true
}
