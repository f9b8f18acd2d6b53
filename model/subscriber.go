package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriberStatusActive       = "active"
	SubscriberStatusInactive     = "inactive"
	SubscriberStatusUnsubscribed = "unsubscribed"
)

/*

NewsletterSubscriber is a data model for one newsletter signup

Id: primary key
CreatedAt: time when entity is created

Email: unique signup identity. Rows are removed for real on admin delete so
	the address is free to sign up again
Status: active / inactive / unsubscribed. New signups start active with
	VerifiedAt unset
VerificationToken: opaque random token used by the verify and unsubscribe
	links. It has no expiry and stays usable after either transition
VerifiedAt: set once by Verify
SubscribedAt: signup time
UnsubscribedAt: set once by Unsubscribe

*/
type NewsletterSubscriber struct {
	Id                string `gorm:"primaryKey"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Email             string `gorm:"uniqueIndex;size:255"`
	Name              string
	Status            string `gorm:"size:20;default:active"`
	VerificationToken string `gorm:"index;size:64"`
	VerifiedAt        *time.Time
	SubscribedAt      time.Time
	UnsubscribedAt    *time.Time
}

func (s *NewsletterSubscriber) BeforeCreate(tx *gorm.DB) error {
	if s.Id == "" {
		s.Id = uuid.New().String()
	}
	if s.VerificationToken == "" {
		s.VerificationToken = uuid.New().String()
	}
	if s.SubscribedAt.IsZero() {
		s.SubscribedAt = time.Now()
	}
	return nil
}

// Verify marks the subscriber verified and active. Calling it again is a
// no-op, the original verification time is kept.
func (s *NewsletterSubscriber) Verify(db *gorm.DB, at time.Time) error {
	if s.VerifiedAt != nil && s.Status == SubscriberStatusActive {
		return nil
	}
	updates := map[string]interface{}{"status": SubscriberStatusActive}
	if s.VerifiedAt == nil {
		updates["verified_at"] = at
	}
	if err := db.Model(s).Updates(updates).Error; err != nil {
		return err
	}
	if s.VerifiedAt == nil {
		s.VerifiedAt = &at
	}
	s.Status = SubscriberStatusActive
	return nil
}

// Unsubscribe flips the subscriber to unsubscribed. Calling it again is a
// no-op, the original unsubscribe time is kept.
func (s *NewsletterSubscriber) Unsubscribe(db *gorm.DB, at time.Time) error {
	if s.Status == SubscriberStatusUnsubscribed {
		return nil
	}
	updates := map[string]interface{}{"status": SubscriberStatusUnsubscribed}
	if s.UnsubscribedAt == nil {
		updates["unsubscribed_at"] = at
	}
	if err := db.Model(s).Updates(updates).Error; err != nil {
		return err
	}
	if s.UnsubscribedAt == nil {
		s.UnsubscribedAt = &at
	}
	s.Status = SubscriberStatusUnsubscribed
	return nil
}

// ActiveSubscribers keeps subscribers the newsletter still goes to.
func ActiveSubscribers(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", SubscriberStatusActive)
}

// VerifiedSubscribers keeps subscribers who confirmed their address.
func VerifiedSubscribers(db *gorm.DB) *gorm.DB {
	return db.Where("verified_at IS NOT NULL")
}
