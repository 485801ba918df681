package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/session"
	"github.com/mrlokans/catalog/internal/workspace"
)

// DefaultWorkspaceKey is used when the router runs without sessions.
const DefaultWorkspaceKey = "default"

const contextKeyWorkspace = "workspace"

// isHTMXRequest returns true if the request is an HTMX request.
func isHTMXRequest(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// WorkspaceMiddleware attaches the browser's workspace to the context.
func WorkspaceMiddleware(registry *workspace.Registry, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := DefaultWorkspaceKey
		if sessions != nil {
			key = sessions.WorkspaceKey(c.Request)
		}
		ws, _ := registry.Get(key)
		c.Set(contextKeyWorkspace, ws)
		c.Next()
	}
}

func workspaceFrom(c *gin.Context) *workspace.Workspace {
	return c.MustGet(contextKeyWorkspace).(*workspace.Workspace)
}
