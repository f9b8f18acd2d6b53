package server

import (
	"strconv"

	"github.com/Lukiyanto/cisaroni-news/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// pageParams reads ?page= and ?per_page= with sane bounds.
func pageParams(c *gin.Context, defaultSize int) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultSize)))
	if perPage < 1 {
		perPage = defaultSize
	}
	return page, utils.Min(perPage, maxPerPage)
}

// paginated is the JSON envelope for every list endpoint.
type paginated struct {
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

// paginate counts the query, applies offset/limit and scans into dest.
func paginate(query *gorm.DB, page, perPage int, dest interface{}) (paginated, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return paginated{}, err
	}
	err := query.Offset((page - 1) * perPage).Limit(perPage).Find(dest).Error
	return paginated{Data: dest, Total: total, Page: page, PerPage: perPage}, err
}
