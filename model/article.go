package model

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/kennygrant/sanitize"
	"gorm.io/gorm"
)

// Article statuses. Status and PublishedAt gate reader visibility
// independently: a "published" article with a future PublishedAt behaves as
// scheduled.
const (
	ArticleStatusDraft     = "draft"
	ArticleStatusPublished = "published"
	ArticleStatusScheduled = "scheduled"
	ArticleStatusArchived  = "archived"
)

const (
	// readingWordsPerMinute is the assumed reader speed for the reading time
	// estimate.
	readingWordsPerMinute = 200
	// excerptRuneLimit caps the excerpt derived from content.
	excerptRuneLimit = 150
)

/*

Article is a data model for a single story

Id: primary key, use to identify an article
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted, default queries exclude deleted rows

Title: headline
Slug: unique url fragment, derived from Title unless set explicitly.
	Uniqueness spans soft-deleted rows, collisions get a "-2", "-3" suffix
Excerpt: short teaser, derived from stripped Content when absent
Content: article body, may contain markup
UserID:
User: the author, "belongs-to" relation
CategoryID:
Category: the section the article is filed under, "belongs-to" relation
Status: draft / published / scheduled / archived
PublishedAt: moment the article goes (or went) live, nil until set
ViewsCount: denormalized counter maintained by RecordView
ReadingTime: minutes, ceil(word count / 200), recomputed on content change

Tags: labels, "many-to-many" relation through article_tags
Comments: reader comments, "has-many" relation
Views: append-only view log, "has-many" relation

*/
type Article struct {
	Id               string `gorm:"primaryKey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt
	Title            string   `gorm:"size:500"`
	Slug             string   `gorm:"uniqueIndex;size:500"`
	Excerpt          string
	Content          string
	FeaturedImage    string
	FeaturedImageAlt string
	UserID           string   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User             User     `json:"user,omitempty"`
	CategoryID       string   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Category         Category `json:"category,omitempty"`
	Status           string   `gorm:"size:20;default:draft"`
	IsFeatured       bool
	IsBreaking       bool
	PublishedAt      *time.Time
	ViewsCount       int64
	ReadingTime      int
	MetaTitle        string
	MetaDescription  string
	MetaKeywords     string

	Tags     []*Tag         `gorm:"many2many:article_tags;" json:"tags,omitempty"`
	Comments []*Comment     `json:"comments,omitempty"`
	Views    []*ArticleView `json:"views,omitempty"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.Id == "" {
		a.Id = uuid.New().String()
	}
	if a.Slug == "" {
		a.Slug = GenerateSlug(a.Title)
	}
	slug, err := EnsureUniqueSlug(tx.Session(&gorm.Session{NewDB: true}), "articles", "slug", a.Slug)
	if err != nil {
		return err
	}
	a.Slug = slug
	return nil
}

// BeforeSave keeps the derived columns consistent with Content. Runs on
// create and on full-struct updates, which is how handlers persist articles.
func (a *Article) BeforeSave(tx *gorm.DB) error {
	a.ReadingTime = EstimateReadingTime(a.Content)
	if a.Excerpt == "" {
		a.Excerpt = DeriveExcerpt(a.Content)
	}
	return nil
}

// Visible is the publication predicate: published status and a publish
// timestamp in the past. IsFeatured / IsBreaking play no part in it.
func (a *Article) Visible(now time.Time) bool {
	return a.Status == ArticleStatusPublished &&
		a.PublishedAt != nil &&
		!a.PublishedAt.After(now)
}

// VisibleArticles pushes the publication predicate down into the query, so
// every reader-facing listing shares the exact same gate.
func VisibleArticles(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ? AND published_at IS NOT NULL AND published_at <= ?", ArticleStatusPublished, now)
	}
}

// FeaturedArticles keeps editor-picked stories.
func FeaturedArticles(db *gorm.DB) *gorm.DB {
	return db.Where("is_featured = ?", true)
}

// BreakingArticles keeps breaking news.
func BreakingArticles(db *gorm.DB) *gorm.DB {
	return db.Where("is_breaking = ?", true)
}

// SearchArticles does a case-insensitive match over title, excerpt and
// content.
func SearchArticles(term string) func(db *gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(term) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"lower(title) LIKE ? OR lower(excerpt) LIKE ? OR lower(content) LIKE ?",
			pattern, pattern, pattern,
		)
	}
}

// EstimateReadingTime returns reading minutes for a chunk of (possibly
// marked up) content, at 200 words per minute, never below 1 for non-empty
// content.
func EstimateReadingTime(content string) int {
	words := len(strings.Fields(sanitize.HTML(content)))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / readingWordsPerMinute))
}

// DeriveExcerpt builds a teaser from content: markup stripped, cut at 150
// runes.
func DeriveExcerpt(content string) string {
	plain := strings.Join(strings.Fields(sanitize.HTML(content)), " ")
	if utf8.RuneCountInString(plain) <= excerptRuneLimit {
		return plain
	}
	runes := []rune(plain)
	return strings.TrimSpace(string(runes[:excerptRuneLimit])) + "..."
}
