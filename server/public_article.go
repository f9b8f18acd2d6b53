package server

import (
	"net/http"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const relatedArticlesLimit = 4

// commentPolicy strips everything dangerous from reader-submitted markup.
var commentPolicy = bluemonday.UGCPolicy()

// ShowArticle is the single story page. Any article failing the visibility
// predicate 404s, deliberately indistinguishable from a slug that never
// existed. A successful read records one (deduped) view.
func (s *Server) ShowArticle(c *gin.Context) {
	now := time.Now()

	var article model.Article
	err := s.DB.Scopes(model.VisibleArticles(now)).
		Preload("User").Preload("Category").Preload("Tags").
		Where("slug = ?", c.Param("slug")).
		First(&article).Error
	if isNotFound(err) {
		respondNotFound(c, "article")
		return
	}
	if err != nil {
		respondInternal(c, err)
		return
	}

	var userID *string
	if actor := Actor(c); actor != nil {
		userID = &actor.Id
	}
	if err := article.RecordView(s.DB, c.ClientIP(), c.Request.UserAgent(), userID, now); err != nil {
		// A lost view must not take the page down.
		log.Log.WithError(err).Warn("failed to record article view")
	}

	comments, err := s.approvedComments(article.Id)
	if err != nil {
		respondInternal(c, err)
		return
	}

	var related []*model.Article
	if err := s.DB.Scopes(model.VisibleArticles(now)).
		Preload("User").Preload("Category").
		Where("id != ? AND category_id = ?", article.Id, article.CategoryID).
		Order("views_count desc").Limit(relatedArticlesLimit).
		Find(&related).Error; err != nil {
		respondInternal(c, err)
		return
	}

	previous, next, err := s.neighborArticles(&article, now)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article":          article,
		"comments":         comments,
		"related_articles": related,
		"previous_article": previous,
		"next_article":     next,
	})
}

// approvedComments fetches the approved top-level comments newest-first,
// each with its approved replies. One level of nesting only.
func (s *Server) approvedComments(articleID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.DB.Scopes(model.ApprovedComments, model.TopLevelComments).
		Where("article_id = ?", articleID).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(model.ApprovedComments).Preload("User")
		}).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

// neighborArticles finds the visible articles published immediately before
// and after the given one.
func (s *Server) neighborArticles(article *model.Article, now time.Time) (*model.Article, *model.Article, error) {
	var previous, next *model.Article

	var prev model.Article
	err := s.DB.Scopes(model.VisibleArticles(now)).
		Where("published_at < ?", article.PublishedAt).
		Order("published_at desc").
		First(&prev).Error
	if err == nil {
		previous = &prev
	} else if !isNotFound(err) {
		return nil, nil, err
	}

	var nxt model.Article
	err = s.DB.Scopes(model.VisibleArticles(now)).
		Where("published_at > ?", article.PublishedAt).
		Order("published_at asc").
		First(&nxt).Error
	if err == nil {
		next = &nxt
	} else if !isNotFound(err) {
		return nil, nil, err
	}

	return previous, next, nil
}

type createCommentRequest struct {
	Content  string  `json:"content" binding:"required,max=50000"`
	ParentID *string `json:"parent_id"`
}

// CreateComment stores a reader comment. Always lands in pending regardless
// of who submits it; moderators let it through later.
func (s *Server) CreateComment(c *gin.Context) {
	actor := Actor(c)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	now := time.Now()
	var article model.Article
	err := s.DB.Scopes(model.VisibleArticles(now)).
		Where("slug = ?", c.Param("slug")).
		First(&article).Error
	if isNotFound(err) {
		respondNotFound(c, "article")
		return
	}
	if err != nil {
		respondInternal(c, err)
		return
	}

	if req.ParentID != nil {
		var parent model.Comment
		if err := s.DB.Where("id = ? AND article_id = ?", *req.ParentID, article.Id).
			First(&parent).Error; err != nil {
			respondFieldError(c, "parent_id", "parent comment not found")
			return
		}
	}

	comment := model.Comment{
		ArticleID:   article.Id,
		UserID:      &actor.Id,
		ParentID:    req.ParentID,
		AuthorName:  actor.Name,
		AuthorEmail: actor.Email,
		Content:     commentPolicy.Sanitize(req.Content),
		Status:      model.CommentStatusPending,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "comment submitted successfully and is awaiting approval",
		"comment": comment,
	})
}
