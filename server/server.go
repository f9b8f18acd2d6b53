// Package server holds the HTTP surface of the CMS: a public reader API and
// an admin CRUD API, both thin layers over the gorm models, the policy
// module and the file store.
package server

import (
	"github.com/Lukiyanto/cisaroni-news/file_store"
	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/server/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	DB    *gorm.DB
	Files file_store.Store
}

func NewServer(db *gorm.DB, files file_store.Store) *Server {
	return &Server{DB: db, Files: files}
}

// Actor returns the authenticated user for this request, or nil on public
// unauthenticated requests.
func Actor(c *gin.Context) *model.User {
	v, ok := c.Get(middlewares.ActorKey)
	if !ok {
		return nil
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return user
}
