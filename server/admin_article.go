package server

import (
	"net/http"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/policy"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type articleRequest struct {
	Title            string     `json:"title" binding:"required,max=500"`
	Slug             string     `json:"slug" binding:"omitempty,max=500"`
	Excerpt          string     `json:"excerpt"`
	Content          string     `json:"content" binding:"required"`
	FeaturedImage    string     `json:"featured_image"`
	FeaturedImageAlt string     `json:"featured_image_alt" binding:"omitempty,max=255"`
	CategoryID       string     `json:"category_id" binding:"required"`
	Status           string     `json:"status" binding:"required,oneof=draft published scheduled archived"`
	IsFeatured       bool       `json:"is_featured"`
	IsBreaking       bool       `json:"is_breaking"`
	PublishedAt      *time.Time `json:"published_at"`
	TagIds           []string   `json:"tag_ids"`
	MetaTitle        string     `json:"meta_title" binding:"omitempty,max=255"`
	MetaDescription  string     `json:"meta_description"`
	MetaKeywords     string     `json:"meta_keywords"`
}

// ListArticles is the admin article table: searchable, filterable,
// paginated, newest first. Users without the editor gate only ever see their
// own articles.
func (s *Server) ListArticles(c *gin.Context) {
	actor := Actor(c)
	if !policy.Can(actor, policy.ActionViewAny, &model.Article{}) {
		respondForbidden(c)
		return
	}

	query := s.DB.Model(&model.Article{}).
		Preload("User").Preload("Category").Preload("Tags").
		Order("created_at desc")

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR slug LIKE ?", pattern, pattern)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if !actor.IsEditor() {
		query = query.Where("user_id = ?", actor.Id)
	}

	page, perPage := pageParams(c, defaultPerPage)
	var articles []*model.Article
	result, err := paginate(query, page, perPage, &articles)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateArticle stores a new article authored by the actor. Tags are
// attached inside the same transaction; publishing without an explicit
// timestamp stamps now.
func (s *Server) CreateArticle(c *gin.Context) {
	actor := Actor(c)
	if !policy.Can(actor, policy.ActionCreate, &model.Article{}) {
		respondForbidden(c)
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	var category model.Category
	if err := s.DB.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
		respondFieldError(c, "category_id", "category not found")
		return
	}

	tags, err := s.tagsByIds(req.TagIds)
	if err != nil {
		respondFieldError(c, "tag_ids", err.Error())
		return
	}

	article := model.Article{
		Title:            req.Title,
		Slug:             req.Slug,
		Excerpt:          req.Excerpt,
		Content:          req.Content,
		FeaturedImage:    req.FeaturedImage,
		FeaturedImageAlt: req.FeaturedImageAlt,
		UserID:           actor.Id,
		CategoryID:       req.CategoryID,
		Status:           req.Status,
		IsFeatured:       req.IsFeatured,
		IsBreaking:       req.IsBreaking,
		PublishedAt:      req.PublishedAt,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		MetaKeywords:     req.MetaKeywords,
		Tags:             tags,
	}
	if article.Status == model.ArticleStatusPublished && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&article).Error
	}); err != nil {
		respondInternal(c, errors.Wrap(err, "create article"))
		return
	}

	c.JSON(http.StatusCreated, article)
}

func (s *Server) GetArticle(c *gin.Context) {
	article, ok := s.findArticle(c, false)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionView, article) {
		respondForbidden(c)
		return
	}

	if err := s.DB.
		Preload("User").Preload("Category").Preload("Tags").
		First(article, "id = ?", article.Id).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// UpdateArticle rewrites an article. The slug follows the title unless pinned
// explicitly; a changed slug is re-uniqued with the usual suffixing.
func (s *Server) UpdateArticle(c *gin.Context) {
	article, ok := s.findArticle(c, false)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionUpdate, article) {
		respondForbidden(c)
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	var category model.Category
	if err := s.DB.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
		respondFieldError(c, "category_id", "category not found")
		return
	}

	tags, err := s.tagsByIds(req.TagIds)
	if err != nil {
		respondFieldError(c, "tag_ids", err.Error())
		return
	}

	newSlug := req.Slug
	if newSlug == "" && req.Title != article.Title {
		newSlug = model.GenerateSlug(req.Title)
	}
	if newSlug != "" && newSlug != article.Slug {
		unique, err := model.EnsureUniqueSlug(s.DB, "articles", "slug", newSlug)
		if err != nil {
			respondInternal(c, err)
			return
		}
		article.Slug = unique
	}

	if req.Excerpt != article.Excerpt || req.Content != article.Content {
		// Let the save hook re-derive an empty excerpt from new content.
		article.Excerpt = req.Excerpt
	}
	article.Title = req.Title
	article.Content = req.Content
	article.FeaturedImage = req.FeaturedImage
	article.FeaturedImageAlt = req.FeaturedImageAlt
	article.CategoryID = req.CategoryID
	article.Status = req.Status
	article.IsFeatured = req.IsFeatured
	article.IsBreaking = req.IsBreaking
	article.PublishedAt = req.PublishedAt
	article.MetaTitle = req.MetaTitle
	article.MetaDescription = req.MetaDescription
	article.MetaKeywords = req.MetaKeywords
	if article.Status == model.ArticleStatusPublished && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		return tx.Model(article).Association("Tags").Replace(tags)
	}); err != nil {
		respondInternal(c, errors.Wrap(err, "update article"))
		return
	}

	article.Tags = tags
	c.JSON(http.StatusOK, article)
}

// DeleteArticle soft-deletes; the row stays restorable.
func (s *Server) DeleteArticle(c *gin.Context) {
	article, ok := s.findArticle(c, false)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionDelete, article) {
		respondForbidden(c)
		return
	}
	if err := s.DB.Delete(article).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article deleted successfully"})
}

// RestoreArticle brings a soft-deleted article back. Admin only.
func (s *Server) RestoreArticle(c *gin.Context) {
	article, ok := s.findArticle(c, true)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionRestore, article) {
		respondForbidden(c)
		return
	}
	if err := s.DB.Unscoped().Model(article).
		Update("deleted_at", nil).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article restored successfully"})
}

// ForceDeleteArticle removes the row for good. Admin only.
func (s *Server) ForceDeleteArticle(c *gin.Context) {
	article, ok := s.findArticle(c, true)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionForceDelete, article) {
		respondForbidden(c)
		return
	}
	if err := s.DB.Unscoped().Delete(article).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article permanently deleted"})
}

func (s *Server) findArticle(c *gin.Context, includeDeleted bool) (*model.Article, bool) {
	query := s.DB
	if includeDeleted {
		query = query.Unscoped()
	}
	var article model.Article
	err := query.Where("id = ?", c.Param("id")).First(&article).Error
	if isNotFound(err) {
		respondNotFound(c, "article")
		return nil, false
	}
	if err != nil {
		respondInternal(c, err)
		return nil, false
	}
	return &article, true
}

func (s *Server) tagsByIds(ids []string) ([]*model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []*model.Tag
	if err := s.DB.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, errors.New("one or more tags not found")
	}
	return tags, nil
}
