package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/panel"
	"github.com/mrlokans/catalog/internal/session"
	"github.com/mrlokans/catalog/internal/toast"
	"github.com/mrlokans/catalog/internal/workspace"
)

// NavItem is one entry of the page navigation.
type NavItem struct {
	Plural string
	Title  string
	Active bool
}

// pages lists the collections in navigation order.
var pages = []NavItem{
	{Plural: "books", Title: "Books"},
	{Plural: "authors", Title: "Authors"},
	{Plural: "bookinstances", Title: "Book Instances"},
	{Plural: "genres", Title: "Genres"},
}

type toastsData struct {
	Toasts    []toast.Toast
	CSRFToken string
	// OOB marks the region for an out-of-band swap next to a panel fragment.
	OOB bool
}

type pageData struct {
	Title     string
	Nav       []NavItem
	Panel     panel.View
	Toasts    toastsData
	CSRFToken string
	Version   string
}

type UIController struct {
	version string
}

func NewUIController(version string) *UIController {
	return &UIController{version: version}
}

func navFor(plural string) []NavItem {
	nav := make([]NavItem, len(pages))
	copy(nav, pages)
	for i := range nav {
		nav[i].Active = nav[i].Plural == plural
	}
	return nav
}

func (controller *UIController) data(c *gin.Context, ws *workspace.Workspace, p panel.Panel) pageData {
	view := p.View()
	token := session.Token(c)
	return pageData{
		Title:     view.Title,
		Nav:       navFor(view.Plural),
		Panel:     view,
		Toasts:    toastsData{Toasts: ws.Toasts.Active(), CSRFToken: token},
		CSRFToken: token,
		Version:   controller.version,
	}
}

// Page renders a collection page. Every page load fetches the collection
// afresh.
func (controller *UIController) Page(plural string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := workspaceFrom(c)
		p, ok := ws.Panel(plural)
		if !ok {
			c.String(http.StatusNotFound, "Unknown collection")
			return
		}
		p.Load(c.Request.Context())
		c.HTML(http.StatusOK, "page", controller.data(c, ws, p))
	}
}

// Home redirects to the books page.
func (controller *UIController) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/books")
}
