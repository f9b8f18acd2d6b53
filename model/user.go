package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles, a flat enumeration. "editor" does not include "admin", the
// helper methods below encode the membership rules used everywhere else.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleAuthor = "author"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

/*

User is a data model for an account in the newsroom

Id: primary key, use to identify a user
CreatedAt: time when entity is created

Name: display name
Email: unique login identity, credential checks happen outside this service.
	Deleting a user frees the email for a new account, so rows go away for
	real rather than lingering soft-deleted under the unique index
PasswordHash: bcrypt hash, only ever written by admin user management
Avatar: file store key of the profile image
Role: one of admin / editor / author
Status: active or inactive

Articles: articles authored by this user, "has-many" relation
Comments: comments written by this user, "has-many" relation
Media: files uploaded by this user, "has-many" relation

*/
type User struct {
	Id           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `json:"-"`
	Avatar       string
	Bio          string
	Role         string `gorm:"size:20;default:author"`
	Status       string `gorm:"size:20;default:active"`

	Articles []*Article `json:"articles,omitempty"`
	Comments []*Comment `json:"comments,omitempty"`
	Media    []*Media   `json:"media,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Id == "" {
		u.Id = uuid.New().String()
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role exactly.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsEditor reports membership in {admin, editor}. Admins pass every editor
// gate.
func (u *User) IsEditor() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

// OnlyEditor is the strict check: editor role and nothing above it.
func (u *User) OnlyEditor() bool {
	return u.Role == RoleEditor
}

// HasAnyRole reports whether the role is one of the known three. Every
// authenticated staff account passes.
func (u *User) HasAnyRole() bool {
	switch u.Role {
	case RoleAdmin, RoleEditor, RoleAuthor:
		return true
	}
	return false
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
