package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*

Tag is a data model for a free-form label attached to articles

Id: primary key, use to identify a tag
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

Name: display name
Slug: unique url fragment derived from Name
IsActive: inactive tags are hidden from readers

Articles: articles carrying this tag, "many-to-many" relation

*/
type Tag struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	Name        string
	Slug        string `gorm:"uniqueIndex;size:255"`
	Description string
	Color       string `gorm:"size:7;default:#000000"`
	IsActive    bool   `gorm:"default:true"`

	Articles []*Article `gorm:"many2many:article_tags;" json:"articles,omitempty"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.Id == "" {
		t.Id = uuid.New().String()
	}
	return nil
}

// ActiveTags keeps only tags visible to readers.
func ActiveTags(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
