package server

import (
	"net/http"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/policy"
	"github.com/gin-gonic/gin"
)

const dashboardLatestLimit = 5

// Dashboard is the admin landing summary: totals per corner of the system
// plus the most recent articles and comments.
func (s *Server) Dashboard(c *gin.Context) {
	actor := Actor(c)
	if !policy.Can(actor, policy.ActionViewAny, &model.Article{}) {
		respondForbidden(c)
		return
	}

	counts := gin.H{}
	var n int64

	if err := s.DB.Model(&model.Article{}).Count(&n).Error; err != nil {
		respondInternal(c, err)
		return
	}
	counts["articles"] = n

	byStatus := map[string]int64{}
	for _, status := range []string{
		model.ArticleStatusDraft, model.ArticleStatusPublished,
		model.ArticleStatusScheduled, model.ArticleStatusArchived,
	} {
		if err := s.DB.Model(&model.Article{}).
			Where("status = ?", status).Count(&n).Error; err != nil {
			respondInternal(c, err)
			return
		}
		byStatus[status] = n
	}
	counts["articles_by_status"] = byStatus

	if err := s.DB.Model(&model.Comment{}).
		Where("status = ?", model.CommentStatusPending).Count(&n).Error; err != nil {
		respondInternal(c, err)
		return
	}
	counts["pending_comments"] = n

	if err := s.DB.Model(&model.User{}).Count(&n).Error; err != nil {
		respondInternal(c, err)
		return
	}
	counts["users"] = n

	if err := s.DB.Model(&model.NewsletterSubscriber{}).
		Scopes(model.ActiveSubscribers).Count(&n).Error; err != nil {
		respondInternal(c, err)
		return
	}
	counts["active_subscribers"] = n

	var totalViews int64
	if err := s.DB.Model(&model.Article{}).
		Select("COALESCE(SUM(views_count), 0)").Scan(&totalViews).Error; err != nil {
		respondInternal(c, err)
		return
	}
	counts["total_views"] = totalViews

	var latestArticles []*model.Article
	if err := s.DB.Preload("User").Preload("Category").
		Order("created_at desc").Limit(dashboardLatestLimit).
		Find(&latestArticles).Error; err != nil {
		respondInternal(c, err)
		return
	}

	var latestComments []*model.Comment
	if err := s.DB.Preload("Article").Preload("User").
		Order("created_at desc").Limit(dashboardLatestLimit).
		Find(&latestComments).Error; err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":          counts,
		"latest_articles": latestArticles,
		"latest_comments": latestComments,
	})
}
