package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*

Category is a data model for a section of the site

Id: primary key, use to identify a category
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

Name: display name
Slug: unique url fragment derived from Name
ParentID:
Parent: optional parent category, the hierarchy is one level deep in practice
Children: categories pointing at this one as parent
SortOrder: display ordering, ascending
IsActive: inactive categories are hidden from readers

Articles: articles filed under this category, "has-many" relation

*/
type Category struct {
	Id              string `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt
	Name            string
	Slug            string `gorm:"uniqueIndex;size:255"`
	Description     string
	Image           string
	Color           string `gorm:"size:7;default:#000000"`
	ParentID        *string
	Parent          *Category   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Children        []*Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	SortOrder       int
	IsActive        bool `gorm:"default:true"`
	MetaTitle       string
	MetaDescription string

	Articles []*Article `json:"articles,omitempty"`

	// ArticlesCount is populated by list queries, not a column.
	ArticlesCount int64 `gorm:"-" json:"articles_count"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Id == "" {
		c.Id = uuid.New().String()
	}
	return nil
}

// ActiveCategories keeps only categories visible to readers.
func ActiveCategories(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// OrderedCategories applies the display ordering.
func OrderedCategories(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order asc")
}
