// Package http serves the catalog front end: one page per collection, the
// panel actions behind its buttons and the toast region.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/session"
)

// NewRouter creates and configures the UI router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(session.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(session.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
	}

	router.SetHTMLTemplate(loadTemplates())
	router.StaticFS("/static", http.FS(staticFiles()))

	health := NewHealthController(cfg.Catalog, cfg.Workspaces, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	ui := NewUIController(cfg.Version)
	panels := NewPanelController(ui)
	toasts := NewToastsController()

	app := router.Group("/")
	app.Use(WorkspaceMiddleware(cfg.Workspaces, cfg.Sessions))
	{
		app.GET("/", ui.Home)
		for _, page := range pages {
			app.GET("/"+page.Plural, ui.Page(page.Plural))
			panels.RegisterRoutes(app, page.Plural)
		}

		app.GET("/ui/toasts", toasts.List)
		app.POST("/ui/toasts/:id/dismiss", toasts.Dismiss)
	}

	return router
}
