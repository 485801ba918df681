// Package panel drives one catalog collection on screen: a list of rows with
// edit and delete actions, and a modal form shared by create and edit.
//
// Every operation handles its own failures by raising a toast; none of them
// return errors to the caller. Network calls are made without holding the
// controller's lock, so a slow catalog server never blocks rendering.
package panel

import (
	"context"
	"errors"
	"log"
	"net/url"
	"sync"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/toast"
)

// API is the slice of catalog.Resource a panel needs.
type API[T entities.Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload catalog.Payload) (T, error)
	Update(ctx context.Context, id string, payload catalog.Payload) error
	Remove(ctx context.Context, id string) error
	FetchFormOptions(ctx context.Context) (entities.FormOptions, error)
}

type Notifier interface {
	Notify(message string) toast.Toast
}

// Display turns a record into its row lines and an optional detail text.
type Display[T entities.Record] func(T) ([]Line, string)

// Config describes one resource panel.
type Config[T entities.Record] struct {
	Descriptor catalog.Descriptor
	Title      string
	Container  string
	RowClass   string
	Form       Form
	Display    Display[T]
	// Values fills the form from an existing record, reference fields
	// included.
	Values func(T) url.Values
	// BasePath prefixes the row action targets. Defaults to /ui/{plural}.
	BasePath string
}

type modal struct {
	visible    bool
	editTarget string
	values     url.Values
	options    map[string][]Option
}

type Controller[T entities.Record] struct {
	cfg      Config[T]
	api      API[T]
	notifier Notifier

	mu      sync.Mutex
	list    List
	records map[string]T
	modal   modal

	listIssued     uint64
	listApplied    uint64
	optionsIssued  uint64
	optionsApplied uint64
}

func NewController[T entities.Record](cfg Config[T], api API[T], notifier Notifier) *Controller[T] {
	if cfg.BasePath == "" {
		cfg.BasePath = "/ui/" + cfg.Descriptor.Plural
	}
	return &Controller[T]{
		cfg:      cfg,
		api:      api,
		notifier: notifier,
		records:  make(map[string]T),
		modal:    modal{options: make(map[string][]Option)},
	}
}

func (c *Controller[T]) Descriptor() catalog.Descriptor {
	return c.cfg.Descriptor
}

// Load is the page bootstrap: fetch the collection and render it.
func (c *Controller[T]) Load(ctx context.Context) {
	c.Refresh(ctx)
}

// Refresh re-fetches the collection and re-renders the list. On failure the
// previous rows stay in place.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.listIssued++
	seq := c.listIssued
	c.mu.Unlock()

	records, err := c.api.List(ctx)
	if err != nil {
		log.Printf("[PANEL] %s: list failed: %v", c.cfg.Descriptor.Plural, err)
		var emptyErr *catalog.EmptyResultError
		if errors.As(err, &emptyErr) {
			c.notify(c.cfg.Descriptor.Messages.Empty)
		} else {
			c.notify(c.cfg.Descriptor.Messages.ListFailed)
		}
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.listApplied {
		return
	}
	c.listApplied = seq

	c.records = make(map[string]T, len(records))
	for _, rec := range records {
		c.records[rec.RecordID()] = rec
	}
	Render(&c.list, c.cfg.RowClass, records, c.cfg.Display, Actions{
		Edit:   func(id string) string { return c.cfg.BasePath + "/" + url.PathEscape(id) + "/edit" },
		Delete: func(id string) string { return c.cfg.BasePath + "/" + url.PathEscape(id) + "/delete" },
	})
}

// OpenCreate shows a blank form in create mode.
func (c *Controller[T]) OpenCreate(ctx context.Context) {
	c.mu.Lock()
	c.modal.visible = true
	c.modal.editTarget = ""
	c.modal.values = url.Values{}
	c.mu.Unlock()

	if c.cfg.Form.HasReferences() {
		c.loadOptions(ctx)
	}
}

// OpenEdit shows the form filled from the cached record id, in edit mode.
func (c *Controller[T]) OpenEdit(ctx context.Context, id string) {
	c.mu.Lock()
	rec, ok := c.records[id]
	if !ok {
		c.mu.Unlock()
		c.notify("Could not find " + c.cfg.Descriptor.Name)
		return
	}
	c.modal.visible = true
	c.modal.editTarget = id
	c.modal.values = c.cfg.Values(rec)
	c.mu.Unlock()

	if c.cfg.Form.HasReferences() {
		c.loadOptions(ctx)
	}
}

// loadOptions fetches reference choices. A response is dropped when a newer
// one has already been applied. Selection is taken from the modal values at
// the moment the options land.
func (c *Controller[T]) loadOptions(ctx context.Context) {
	c.mu.Lock()
	c.optionsIssued++
	seq := c.optionsIssued
	c.mu.Unlock()

	options, err := c.api.FetchFormOptions(ctx)
	if err != nil {
		log.Printf("[PANEL] %s: form options failed: %v", c.cfg.Descriptor.Plural, err)
		c.notify(catalog.UserMessage(err, c.cfg.Descriptor.Messages.OptionsFailed))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.optionsApplied {
		return
	}
	c.optionsApplied = seq

	for _, field := range c.cfg.Form.Fields {
		if field.Reference == nil {
			continue
		}
		c.modal.options[field.Name] = referenceOptions(field, options)
	}
}

// Submit sends the form. It is a no-op while the modal is closed. Required
// references are checked first; a missing one raises a toast and leaves the
// modal open. Otherwise the modal is closed and the edit target cleared
// whatever the outcome, and the list is refreshed only on success.
func (c *Controller[T]) Submit(ctx context.Context, values url.Values) {
	c.mu.Lock()
	open := c.modal.visible
	c.mu.Unlock()
	if !open {
		log.Printf("[PANEL] %s: submit ignored, form is closed", c.cfg.Descriptor.Plural)
		return
	}

	if err := c.cfg.Form.CheckRequired(values); err != nil {
		c.mu.Lock()
		c.modal.values = values
		c.mu.Unlock()
		c.notify(catalog.UserMessage(err, err.Error()))
		return
	}
	payload := c.cfg.Form.Payload(values)

	c.mu.Lock()
	if !c.modal.visible {
		c.mu.Unlock()
		return
	}
	target := c.modal.editTarget
	c.closeLocked()
	c.mu.Unlock()

	var err error
	var fallback string
	if target != "" {
		err = c.api.Update(ctx, target, payload)
		fallback = c.cfg.Descriptor.Messages.UpdateFailed
	} else {
		_, err = c.api.Create(ctx, payload)
		fallback = c.cfg.Descriptor.Messages.CreateFailed
	}
	if err != nil {
		log.Printf("[PANEL] %s: submit failed: %v", c.cfg.Descriptor.Plural, err)
		c.notify(catalog.UserMessage(err, fallback))
		return
	}

	c.Refresh(ctx)
}

// Cancel closes the modal and leaves create/edit mode.
func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *Controller[T]) closeLocked() {
	c.modal.visible = false
	c.modal.editTarget = ""
	c.modal.values = nil
}

// Delete removes record id and refreshes the list on success.
func (c *Controller[T]) Delete(ctx context.Context, id string) {
	if err := c.api.Remove(ctx, id); err != nil {
		log.Printf("[PANEL] %s: delete %s failed: %v", c.cfg.Descriptor.Plural, id, err)
		c.notify(catalog.UserMessage(err, c.cfg.Descriptor.Messages.DeleteFailed))
		return
	}
	c.Refresh(ctx)
}

func (c *Controller[T]) notify(message string) {
	if c.notifier != nil {
		c.notifier.Notify(message)
	}
}
