package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*

Media is a data model for an uploaded file

Id: primary key, use to identify a media record
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

Filename: stored name, uuid-prefixed to avoid collisions
OriginalName: name the file was uploaded with
MimeType: detected content type
Size: bytes
Path: file store key
URL: public url resolved by the file store at upload time
UserID:
User: the uploader, "belongs-to" relation

The row is pure metadata, the bytes live in the file store.

*/
type Media struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
	Filename     string
	OriginalName string
	MimeType     string `gorm:"size:255"`
	Size         int64
	Path         string
	URL          string
	AltText      string
	Caption      string
	UserID       string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User         User   `json:"user,omitempty"`
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.Id == "" {
		m.Id = uuid.New().String()
	}
	return nil
}

func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.MimeType, "image/")
}

// HumanSize renders Size as "1.25 MB" style text.
func (m *Media) HumanSize() string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(m.Size)
	i := 0
	for size > 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}

// ImageMedia keeps image uploads.
func ImageMedia(db *gorm.DB) *gorm.DB {
	return db.Where("mime_type LIKE ?", "image/%")
}

// DocumentMedia keeps everything that is not an image.
func DocumentMedia(db *gorm.DB) *gorm.DB {
	return db.Where("mime_type NOT LIKE ?", "image/%")
}
