package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/gin-gonic/gin"
)

const searchPageSize = 12

// Search matches visible articles against ?q= over title, excerpt and
// content. An empty query returns an empty result set rather than every
// article.
func (s *Server) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, gin.H{
			"articles": paginated{Data: []*model.Article{}},
			"query":    "",
			"total":    0,
		})
		return
	}

	query := s.DB.Model(&model.Article{}).
		Scopes(model.VisibleArticles(time.Now()), model.SearchArticles(q)).
		Preload("User").Preload("Category").Preload("Tags").
		Order("published_at desc")

	page, perPage := pageParams(c, searchPageSize)
	var articles []*model.Article
	result, err := paginate(query, page, perPage, &articles)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": result,
		"query":    q,
		"total":    result.Total,
	})
}
