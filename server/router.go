package server

import (
	"net/http"

	"github.com/Lukiyanto/cisaroni-news/file_store"
	"github.com/Lukiyanto/cisaroni-news/server/middlewares"
	"github.com/Lukiyanto/cisaroni-news/utils/flag"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires every route of both surfaces onto a gin engine.
func NewRouter(db *gorm.DB, files file_store.Store) *gin.Engine {
	s := NewServer(db, files)

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public reader surface.
	public := router.Group("/", middlewares.OptionalJWT(db))
	{
		public.GET("/", s.Home)
		public.GET("/articles/:slug", s.ShowArticle)
		public.GET("/categories/:slug", s.ShowCategory)
		public.GET("/search", s.Search)

		public.POST("/newsletter/subscribe", s.Subscribe)
		public.GET("/newsletter/verify/:token", s.VerifySubscription)
		public.GET("/newsletter/unsubscribe/:token", s.Unsubscribe)
	}

	// Commenting needs an authenticated reader.
	router.POST("/articles/:slug/comments", middlewares.JWT(db), s.CreateComment)

	// Admin surface, everything behind auth + the policy module.
	authn := middlewares.JWT(db)
	if flag.ByPassAuth {
		authn = middlewares.FakeAdmin()
	}
	admin := router.Group("/admin", authn)
	{
		admin.GET("/dashboard", s.Dashboard)

		admin.GET("/articles", s.ListArticles)
		admin.POST("/articles", s.CreateArticle)
		admin.GET("/articles/:id", s.GetArticle)
		admin.PUT("/articles/:id", s.UpdateArticle)
		admin.DELETE("/articles/:id", s.DeleteArticle)
		admin.POST("/articles/:id/restore", s.RestoreArticle)
		admin.DELETE("/articles/:id/force", s.ForceDeleteArticle)

		admin.GET("/categories", s.ListCategories)
		admin.POST("/categories", s.CreateCategory)
		admin.GET("/categories/:id", s.GetCategory)
		admin.PUT("/categories/:id", s.UpdateCategory)
		admin.DELETE("/categories/:id", s.DeleteCategory)

		admin.GET("/tags", s.ListTags)
		admin.POST("/tags", s.CreateTag)
		admin.PUT("/tags/:id", s.UpdateTag)
		admin.DELETE("/tags/:id", s.DeleteTag)

		admin.GET("/comments", s.ListComments)
		admin.GET("/comments/:id", s.GetComment)
		admin.POST("/comments/:id/approve", s.ApproveComment)
		admin.POST("/comments/:id/reject", s.RejectComment)
		admin.PUT("/comments/:id", s.UpdateComment)
		admin.DELETE("/comments/:id", s.DeleteComment)

		admin.GET("/users", s.ListUsers)
		admin.POST("/users", s.CreateUser)
		admin.PUT("/users/:id", s.UpdateUser)
		admin.DELETE("/users/:id", s.DeleteUser)

		admin.GET("/media", s.ListMedia)
		admin.POST("/media", s.UploadMedia)
		admin.PUT("/media/:id", s.UpdateMedia)
		admin.DELETE("/media/:id", s.DeleteMedia)

		admin.GET("/subscribers", s.ListSubscribers)
		admin.DELETE("/subscribers/:id", s.DeleteSubscriber)
	}

	return router
}
