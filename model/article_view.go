package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/*

ArticleView is an append-only log row recording one article read

Id: primary key
ArticleID: the article that was read
IPAddress: client address, part of the dedup key
UserAgent: raw user agent header
UserID: the authenticated reader if any, nil for anonymous reads
ViewedAt: moment of the read
ViewedDate: calendar day of ViewedAt, backs the dedup unique index

A (article_id, ip_address, viewed_date) unique index makes the
at-most-one-view-per-ip-per-day rule hold under concurrent requests, the
conflicting insert is a silent no-op.

*/
type ArticleView struct {
	Id         string `gorm:"primaryKey"`
	ArticleID  string `gorm:"uniqueIndex:idx_article_views_dedup;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	IPAddress  string `gorm:"size:45;uniqueIndex:idx_article_views_dedup"`
	UserAgent  string
	UserID     *string
	ViewedAt   time.Time
	ViewedDate datatypes.Date `gorm:"uniqueIndex:idx_article_views_dedup"`
}

func (v *ArticleView) BeforeCreate(tx *gorm.DB) error {
	if v.Id == "" {
		v.Id = uuid.New().String()
	}
	return nil
}

// RecordView writes a view row for the article and bumps its counter, unless
// the same IP already viewed it on the same calendar day. The dedup rides on
// the unique index, so the counter moves iff a row was actually inserted.
func (a *Article) RecordView(db *gorm.DB, ipAddress, userAgent string, userID *string, at time.Time) error {
	view := ArticleView{
		ArticleID:  a.Id,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		UserID:     userID,
		ViewedAt:   at,
		ViewedDate: datatypes.Date(at),
	}

	res := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "article_id"}, {Name: "ip_address"}, {Name: "viewed_date"},
		},
		DoNothing: true,
	}).Create(&view)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Already counted today.
		return nil
	}

	return db.Model(&Article{}).Where("id = ?", a.Id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}
