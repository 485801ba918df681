package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/session"
)

// ToastsController serves the toast region, polled by the page.
type ToastsController struct{}

func NewToastsController() *ToastsController {
	return &ToastsController{}
}

func (tc *ToastsController) List(c *gin.Context) {
	ws := workspaceFrom(c)
	c.HTML(http.StatusOK, "toasts", toastsData{
		Toasts:    ws.Toasts.Active(),
		CSRFToken: session.Token(c),
	})
}

// Dismiss starts the fade of one toast. Unknown ids are ignored.
func (tc *ToastsController) Dismiss(c *gin.Context) {
	ws := workspaceFrom(c)
	ws.Toasts.Dismiss(c.Param("id"))

	if !isHTMXRequest(c) {
		back := c.Request.Referer()
		if back == "" {
			back = "/"
		}
		c.Redirect(http.StatusSeeOther, back)
		return
	}
	tc.List(c)
}
