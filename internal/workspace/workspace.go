// Package workspace holds the per-browser UI state: one toast stack and one
// panel per catalog collection, looked up by session key.
package workspace

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/panel"
	"github.com/mrlokans/catalog/internal/toast"
)

type Workspace struct {
	Key    string
	Toasts *toast.Notifier

	Authors       *panel.Controller[entities.Author]
	Books         *panel.Controller[entities.Book]
	BookInstances *panel.Controller[entities.BookInstance]
	Genres        *panel.Controller[entities.Genre]

	panels map[string]panel.Panel
}

// New builds a workspace with all four panels talking to client.
func New(key string, client *catalog.Client, toasts toast.Config) *Workspace {
	n := toast.NewNotifier(toasts)
	w := &Workspace{
		Key:           key,
		Toasts:        n,
		Authors:       panel.NewController(panel.AuthorConfig(), catalog.NewResource[entities.Author](client, catalog.Authors), n),
		Books:         panel.NewController(panel.BookConfig(), catalog.NewResource[entities.Book](client, catalog.Books), n),
		BookInstances: panel.NewController(panel.BookInstanceConfig(), catalog.NewResource[entities.BookInstance](client, catalog.BookInstances), n),
		Genres:        panel.NewController(panel.GenreConfig(), catalog.NewResource[entities.Genre](client, catalog.Genres), n),
	}
	w.panels = map[string]panel.Panel{
		catalog.Authors.Plural:       w.Authors,
		catalog.Books.Plural:         w.Books,
		catalog.BookInstances.Plural: w.BookInstances,
		catalog.Genres.Plural:        w.Genres,
	}
	return w
}

// Panel returns the panel for a collection's plural name.
func (w *Workspace) Panel(plural string) (panel.Panel, bool) {
	p, ok := w.panels[plural]
	return p, ok
}

// Close stops the workspace's toast timers.
func (w *Workspace) Close() {
	w.Toasts.Close()
}

type slot struct {
	ws       *Workspace
	lastUsed time.Time
}

// Registry creates workspaces on first use and forgets idle ones.
type Registry struct {
	client *catalog.Client
	toasts toast.Config
	now    func() time.Time

	mu    sync.Mutex
	slots map[string]*slot
}

func NewRegistry(client *catalog.Client, toasts toast.Config) *Registry {
	return &Registry{
		client: client,
		toasts: toasts,
		now:    time.Now,
		slots:  make(map[string]*slot),
	}
}

// Get returns the workspace for key, creating it when needed. The second
// result is true when the workspace was just created.
func (r *Registry) Get(key string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.slots[key]; ok {
		s.lastUsed = r.now()
		return s.ws, false
	}

	ws := New(key, r.client, r.toasts)
	r.slots[key] = &slot{ws: ws, lastUsed: r.now()}
	log.Printf("[WORKSPACE] Created workspace %s (%d active)", shortKey(key), len(r.slots))
	return ws, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}

// Keys lists the active workspace keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.slots))
	for k := range r.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sweep closes and drops workspaces unused for longer than idle. It returns
// how many were dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	cutoff := r.now().Add(-idle)
	var stale []*Workspace
	for key, s := range r.slots {
		if s.lastUsed.Before(cutoff) {
			stale = append(stale, s.ws)
			delete(r.slots, key)
		}
	}
	r.mu.Unlock()

	for _, ws := range stale {
		ws.Close()
	}
	if len(stale) > 0 {
		log.Printf("[WORKSPACE] Swept %d idle workspaces", len(stale))
	}
	return len(stale)
}

// Close drops every workspace.
func (r *Registry) Close() {
	r.mu.Lock()
	slots := r.slots
	r.slots = make(map[string]*slot)
	r.mu.Unlock()

	for _, s := range slots {
		s.ws.Close()
	}
}

func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
