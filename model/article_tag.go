package model

import (
	"time"
)

/*

ArticleTag is a "many-to-many" relation of an article carrying a tag

ArticleID: article id
TagID: tag id
CreatedAt: time when relation is created

*/
type ArticleTag struct {
	ArticleID string `gorm:"primaryKey"`
	TagID     string `gorm:"primaryKey"`
	CreatedAt time.Time
}
