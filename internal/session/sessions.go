// Package session carries the browser-facing web plumbing of the front end:
// server-side sessions, CSRF protection and security headers.
package session

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mrlokans/catalog/internal/config"
)

// KeyWorkspace is the session key holding the browser's workspace key.
const KeyWorkspace = "workspace_key"

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// OpenStore opens the SQLite file backing the session store and creates the
// sessions table.
func OpenStore(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return db, nil
}

// NewManager creates a session manager storing sessions in db.
func NewManager(db *sql.DB, cfg config.Session) *Manager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = cfg.Lifetime
	sm.IdleTimeout = cfg.Lifetime / 2

	sm.Cookie.Name = "catalog_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}
}

// WorkspaceKey returns the workspace key of the request's session, assigning
// a fresh one on first use.
func (m *Manager) WorkspaceKey(r *http.Request) string {
	ctx := r.Context()
	if key := m.GetString(ctx, KeyWorkspace); key != "" {
		return key
	}
	key := uuid.NewString()
	m.Put(ctx, KeyWorkspace, key)
	return key
}
