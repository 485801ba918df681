package panel

import (
	"context"
	"net/url"

	"github.com/mrlokans/catalog/internal/catalog"
)

// Panel is the type-erased surface of a Controller, used by handlers that
// serve every resource the same way.
type Panel interface {
	Descriptor() catalog.Descriptor
	Load(ctx context.Context)
	Refresh(ctx context.Context)
	OpenCreate(ctx context.Context)
	OpenEdit(ctx context.Context, id string)
	Submit(ctx context.Context, values url.Values)
	Cancel()
	Delete(ctx context.Context, id string)
	View() View
}

type View struct {
	Plural       string
	Title        string
	Container    string
	TriggerID    string
	TriggerLabel string
	BasePath     string
	Rows         []Row
	Modal        ModalView
}

type ModalView struct {
	Visible     bool
	EditTarget  string
	SubmitLabel string
	FormID      string
	ModalID     string
	SubmitID    string
	Fields      []FieldView
}

// Editing reports whether a submit would update rather than create.
func (m ModalView) Editing() bool {
	return m.EditTarget != ""
}

type FieldView struct {
	Field
	Value   string
	Options []Option
}

// View snapshots everything needed to draw the panel.
func (c *Controller[T]) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	form := c.cfg.Form
	m := ModalView{
		Visible:     c.modal.visible,
		EditTarget:  c.modal.editTarget,
		SubmitLabel: "Create",
		FormID:      form.ID,
		ModalID:     form.ModalID,
		SubmitID:    form.SubmitID,
	}
	if m.EditTarget != "" {
		m.SubmitLabel = "Edit"
	}

	for _, field := range form.Fields {
		fv := FieldView{Field: field, Value: c.modal.values.Get(field.Name)}
		switch {
		case field.Reference != nil:
			fv.Options = markSelected(c.modal.options[field.Name], c.modal.values[field.Name])
		case len(field.Choices) > 0:
			fv.Options = markSelected(field.Choices, c.modal.values[field.Name])
		}
		m.Fields = append(m.Fields, fv)
	}

	return View{
		Plural:       c.cfg.Descriptor.Plural,
		Title:        c.cfg.Title,
		Container:    c.cfg.Container,
		TriggerID:    form.TriggerID,
		TriggerLabel: form.TriggerLabel,
		BasePath:     c.cfg.BasePath,
		Rows:         c.list.Rows(),
		Modal:        m,
	}
}

// Visible reports whether the modal is shown.
func (c *Controller[T]) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal.visible
}

// EditTarget returns the id being edited, or "" in create mode.
func (c *Controller[T]) EditTarget() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal.editTarget
}
