package http

import (
	"context"

	"github.com/mrlokans/catalog/internal/session"
	"github.com/mrlokans/catalog/internal/workspace"
)

// CatalogPinger reports whether the catalog API is reachable.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig contains all dependencies needed to create the UI router.
type RouterConfig struct {
	Workspaces *workspace.Registry

	// Sessions is optional; without it every request shares the workspace
	// keyed DefaultWorkspaceKey.
	Sessions *session.Manager

	// CSRF protection is enabled when the secret is set
	CSRFSecret    []byte
	SecureCookies bool

	Catalog CatalogPinger
	Version string
}
