package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/panel"
	"github.com/mrlokans/catalog/internal/session"
)

// PanelController serves the create, edit, submit, cancel and delete
// actions of every collection panel. HTMX requests get the redrawn panel
// with the toast region swapped out of band; plain form posts are redirected
// back to the page.
type PanelController struct {
	ui *UIController
}

func NewPanelController(ui *UIController) *PanelController {
	return &PanelController{ui: ui}
}

type panelAction func(c *gin.Context, p panel.Panel)

// RegisterRoutes binds the action routes of one collection.
func (pc *PanelController) RegisterRoutes(router gin.IRoutes, plural string) {
	base := "/ui/" + plural
	router.POST(base+"/new", pc.handle(plural, pc.openCreate))
	router.POST(base+"/:id/edit", pc.handle(plural, pc.openEdit))
	router.POST(base+"/submit", pc.handle(plural, pc.submit))
	router.POST(base+"/cancel", pc.handle(plural, pc.cancel))
	router.POST(base+"/:id/delete", pc.handle(plural, pc.delete))
}

func (pc *PanelController) handle(plural string, action panelAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := workspaceFrom(c)
		p, ok := ws.Panel(plural)
		if !ok {
			c.String(http.StatusNotFound, "Unknown collection")
			return
		}

		action(c, p)

		if !isHTMXRequest(c) {
			c.Redirect(http.StatusSeeOther, "/"+plural)
			return
		}
		data := pc.ui.data(c, ws, p)
		data.Toasts.OOB = true
		c.HTML(http.StatusOK, "panel-fragment", data)
	}
}

func (pc *PanelController) openCreate(c *gin.Context, p panel.Panel) {
	p.OpenCreate(c.Request.Context())
}

func (pc *PanelController) openEdit(c *gin.Context, p panel.Panel) {
	p.OpenEdit(c.Request.Context(), c.Param("id"))
}

func (pc *PanelController) submit(c *gin.Context, p panel.Panel) {
	// A body that fails to parse submits as an empty form.
	_ = c.Request.ParseForm()
	values := c.Request.PostForm
	values.Del(session.FieldName)
	p.Submit(c.Request.Context(), values)
}

func (pc *PanelController) cancel(c *gin.Context, p panel.Panel) {
	p.Cancel()
}

func (pc *PanelController) delete(c *gin.Context, p panel.Panel) {
	p.Delete(c.Request.Context(), c.Param("id"))
}
