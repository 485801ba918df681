// Package toast keeps transient, dismissible notices for display.
//
// Every notice runs its own timers: it is shown for the display window, then
// fades for the fade window, then disappears. Dismissing a notice jumps
// straight to the fade. Notices never block each other.
package toast

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StateShowing State = "show"
	StateFading  State = "fading"
)

type Toast struct {
	ID        string
	Message   string
	State     State
	CreatedAt time.Time
}

// Config holds the notice timings.
type Config struct {
	Display time.Duration
	Fade    time.Duration
}

// DefaultConfig returns the standard 15s display and 0.5s fade.
func DefaultConfig() Config {
	return Config{
		Display: 15 * time.Second,
		Fade:    500 * time.Millisecond,
	}
}

type entry struct {
	toast Toast
	timer *time.Timer
}

// Notifier is safe for concurrent use.
type Notifier struct {
	cfg Config

	mu     sync.Mutex
	byID   map[string]*entry
	order  []string
	closed bool
}

func NewNotifier(cfg Config) *Notifier {
	defaults := DefaultConfig()
	if cfg.Display <= 0 {
		cfg.Display = defaults.Display
	}
	if cfg.Fade <= 0 {
		cfg.Fade = defaults.Fade
	}
	return &Notifier{
		cfg:  cfg,
		byID: make(map[string]*entry),
	}
}

// Notify appends a notice and starts its display timer.
func (n *Notifier) Notify(message string) Toast {
	t := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		State:     StateShowing,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return t
	}

	e := &entry{toast: t}
	e.timer = time.AfterFunc(n.cfg.Display, func() { n.fade(t.ID) })
	n.byID[t.ID] = e
	n.order = append(n.order, t.ID)

	log.Printf("[TOAST] %s", message)
	return t
}

// Dismiss starts the fade of notice id right away. It returns false when the
// notice is unknown or already gone.
func (n *Notifier) Dismiss(id string) bool {
	return n.fade(id)
}

func (n *Notifier) fade(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	e, ok := n.byID[id]
	if !ok {
		return false
	}
	if e.toast.State == StateFading {
		return true
	}

	e.timer.Stop()
	e.toast.State = StateFading
	e.timer = time.AfterFunc(n.cfg.Fade, func() { n.remove(id) })
	return true
}

func (n *Notifier) remove(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.byID[id]; !ok {
		return
	}
	delete(n.byID, id)
	for i, existing := range n.order {
		if existing == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// Active returns the current notices, oldest first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Toast, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, n.byID[id].toast)
	}
	return out
}

// Close stops every timer and drops all notices. Later Notify calls are no-ops.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, e := range n.byID {
		e.timer.Stop()
	}
	n.byID = make(map[string]*entry)
	n.order = nil
	n.closed = true
}
