// Package catalogapi serves the catalog REST contract from the local
// database, for development, demos and end-to-end tests of the front end.
package catalogapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type RouterConfig struct {
	Store       Store
	ReadOnly    *ReadOnly
	CORSOrigins []string
	// Ping reports database health; nil skips the check.
	Ping func() error
}

// NewRouter builds the API handler, CORS included.
func NewRouter(cfg RouterConfig) http.Handler {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.ReadOnly != nil {
		router.Use(cfg.ReadOnly.Handler())
	}

	ctrl := NewController(cfg.Store)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/health", func(c *gin.Context) {
		if cfg.Ping != nil {
			if err := cfg.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	catalog := router.Group("/catalog")
	{
		catalog.GET("/authors", ctrl.ListAuthors)
		catalog.POST("/authors", ctrl.CreateAuthor)
		catalog.PUT("/authors/:id", ctrl.UpdateAuthor)
		catalog.DELETE("/authors/:id", ctrl.DeleteAuthor)

		catalog.GET("/books/", ctrl.ListBooks)
		catalog.POST("/books", ctrl.CreateBook)
		catalog.PUT("/books/:id", ctrl.UpdateBook)
		catalog.DELETE("/books/:id", ctrl.DeleteBook)
		catalog.GET("/bookscreateform", ctrl.BookCreateForm)

		catalog.GET("/bookinstances/", ctrl.ListInstances)
		catalog.POST("/bookinstances", ctrl.CreateInstance)
		catalog.PUT("/bookinstances/:id", ctrl.UpdateInstance)
		catalog.DELETE("/bookinstances/:id", ctrl.DeleteInstance)
		catalog.GET("/bookinstancescreateform", ctrl.InstanceCreateForm)

		catalog.GET("/genres/", ctrl.ListGenres)
		catalog.POST("/genres", ctrl.CreateGenre)
		catalog.PUT("/genres/:id", ctrl.UpdateGenre)
		catalog.DELETE("/genres/:id", ctrl.DeleteGenre)
	}

	users := router.Group("/users")
	{
		users.GET("", ListUsers)
		users.GET("/info", UserInfo)
	}

	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	}).Handler(router)
}
