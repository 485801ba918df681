package panel

import (
	"net/url"
	"strings"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
)

type FieldKind string

const (
	KindText       FieldKind = "text"
	KindDate       FieldKind = "date"
	KindTextArea   FieldKind = "textarea"
	KindSelect     FieldKind = "select"
	KindEnum       FieldKind = "enum"
	KindCheckboxes FieldKind = "checkboxes"
)

// Reference sources, matching the keys of the form options response.
const (
	SourceAuthors = "authors"
	SourceGenres  = "genres"
	SourceBooks   = "books"
)

// Reference marks a field whose value is the id of another record.
type Reference struct {
	Source string
	Many   bool

	// Required fields are checked before any request is made.
	Required        bool
	RequiredMessage string
}

// Option is one choice of a selector or checkbox group.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field describes one input of a modal form. Name is both the form input
// name and the payload key.
type Field struct {
	ID        string
	Name      string
	Label     string
	Kind      FieldKind
	Nullable  bool
	Choices   []Option
	Reference *Reference
}

// Form is the static description of a resource's modal.
type Form struct {
	ID           string
	ModalID      string
	SubmitID     string
	TriggerID    string
	TriggerLabel string
	Fields       []Field
}

// HasReferences reports whether opening the form needs a form options fetch.
func (f Form) HasReferences() bool {
	for _, field := range f.Fields {
		if field.Reference != nil {
			return true
		}
	}
	return false
}

// CheckRequired returns a ReferenceRequiredError for the first required
// reference left empty in values.
func (f Form) CheckRequired(values url.Values) error {
	for _, field := range f.Fields {
		ref := field.Reference
		if ref == nil || !ref.Required {
			continue
		}
		if len(nonEmpty(values[field.Name])) == 0 {
			return &catalog.ReferenceRequiredError{Field: field.Name, Message: ref.RequiredMessage}
		}
	}
	return nil
}

// Payload builds the request body from submitted values. Every field is
// present: multi references as a (possibly empty) list, nullable fields left
// blank as null.
func (f Form) Payload(values url.Values) catalog.Payload {
	payload := make(catalog.Payload, len(f.Fields))
	for _, field := range f.Fields {
		if field.Reference != nil && field.Reference.Many {
			ids := nonEmpty(values[field.Name])
			if ids == nil {
				ids = []string{}
			}
			payload[field.Name] = ids
			continue
		}

		value := strings.TrimSpace(values.Get(field.Name))
		if value == "" && field.Nullable {
			payload[field.Name] = nil
			continue
		}
		payload[field.Name] = value
	}
	return payload
}

// referenceOptions maps a form options response onto the choices of field.
func referenceOptions(field Field, options entities.FormOptions) []Option {
	var out []Option
	switch field.Reference.Source {
	case SourceAuthors:
		for _, a := range options.Authors {
			out = append(out, Option{Value: a.ID, Label: a.FullName()})
		}
	case SourceGenres:
		for _, g := range options.Genres {
			out = append(out, Option{Value: g.ID, Label: g.Name})
		}
	case SourceBooks:
		for _, b := range options.Books {
			out = append(out, Option{Value: b.ID, Label: b.Title})
		}
	}
	return out
}

// markSelected returns a copy of choices with Selected set from selected.
func markSelected(choices []Option, selected []string) []Option {
	out := make([]Option, len(choices))
	for i, choice := range choices {
		choice.Selected = false
		for _, id := range selected {
			if choice.Value == id {
				choice.Selected = true
				break
			}
		}
		out[i] = choice
	}
	return out
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
