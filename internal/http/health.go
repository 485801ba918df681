package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/workspace"
)

const catalogPingTimeout = 3 * time.Second

type HealthResponse struct {
	Status     string            `json:"status"`
	Time       string            `json:"time"`
	Version    string            `json:"version,omitempty"`
	Workspaces int               `json:"workspaces"`
	Checks     map[string]string `json:"checks"`
}

// HealthController reports whether the catalog API answers. The front end
// itself holds no storage worth checking.
type HealthController struct {
	catalog    CatalogPinger
	workspaces *workspace.Registry
	version    string
}

func NewHealthController(catalog CatalogPinger, workspaces *workspace.Registry, version string) *HealthController {
	return &HealthController{
		catalog:    catalog,
		workspaces: workspaces,
		version:    version,
	}
}

func (h *HealthController) catalogCheck(ctx context.Context) (string, bool) {
	if h.catalog == nil {
		return "not configured", true
	}
	ctx, cancel := context.WithTimeout(ctx, catalogPingTimeout)
	defer cancel()
	if err := h.catalog.Ping(ctx); err != nil {
		return "error: " + err.Error(), false
	}
	return "ok", true
}

func (h *HealthController) Status(c *gin.Context) {
	catalogStatus, healthy := h.catalogCheck(c.Request.Context())

	resp := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{"catalog_api": catalogStatus},
	}
	if h.workspaces != nil {
		resp.Workspaces = h.workspaces.Len()
		resp.Checks["workspaces"] = strconv.Itoa(resp.Workspaces) + " active"
	}

	code := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	c.IndentedJSON(code, resp)
}
