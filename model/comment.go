package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment statuses. Every comment starts pending; approved/rejected are set
// by moderators, spam is a direct classification.
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusRejected = "rejected"
	CommentStatusSpam     = "spam"
)

/*

Comment is a data model for a reader comment on an article

Id: primary key, use to identify a comment
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

ArticleID:
Article: the commented article, "belongs-to" relation
UserID:
User: the authenticated author if any, "belongs-to" relation
ParentID:
Parent: optional parent comment, threading is one level deep
Replies: comments pointing at this one as parent
AuthorName / AuthorEmail: denormalized author identity, also covers
	anonymous commenters
Content: sanitized body text
Status: pending / approved / rejected / spam
IPAddress / UserAgent: request fingerprint captured at submission

*/
type Comment struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	ArticleID   string     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Article     Article    `json:"article,omitempty"`
	UserID      *string
	User        *User      `json:"user,omitempty"`
	ParentID    *string
	Parent      *Comment   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Replies     []*Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	AuthorName  string
	AuthorEmail string
	Content     string
	Status      string `gorm:"size:20;default:pending"`
	IPAddress   string `gorm:"size:45"`
	UserAgent   string
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Id == "" {
		c.Id = uuid.New().String()
	}
	return nil
}

func (c *Comment) IsPending() bool {
	return c.Status == CommentStatusPending
}

// ValidCommentStatus reports whether s is one of the four known statuses.
func ValidCommentStatus(s string) bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusRejected, CommentStatusSpam:
		return true
	}
	return false
}

// ApprovedComments keeps only comments shown to readers.
func ApprovedComments(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", CommentStatusApproved)
}

// TopLevelComments keeps comments without a parent.
func TopLevelComments(db *gorm.DB) *gorm.DB {
	return db.Where("parent_id IS NULL")
}
