package catalogapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReadOnly blocks write operations when enabled. GET, HEAD and OPTIONS
// always pass.
type ReadOnly struct {
	enabled bool
}

func NewReadOnly(enabled bool) *ReadOnly {
	return &ReadOnly{enabled: enabled}
}

func (m *ReadOnly) IsEnabled() bool {
	return m.enabled
}

func (m *ReadOnly) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := keyMessage
		if c.Request.Method == http.MethodDelete && c.FullPath() == "/catalog/authors/:id" {
			key = keyError
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{string(key): "This action is disabled in demo mode"})
	}
}
