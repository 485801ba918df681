package panel

import (
	"strings"

	"github.com/mrlokans/catalog/internal/entities"
)

// Line is one visible piece of a row, rendered with its own class.
type Line struct {
	Class string
	Text  string
}

// Action is a row button bound to that row's record.
type Action struct {
	Label  string
	Target string
}

type Row struct {
	ID     string
	Class  string
	Lines  []Line
	Detail string
	Edit   Action
	Delete Action
}

// Text joins the row's lines the way they read on screen.
func (r Row) Text() string {
	parts := make([]string, 0, len(r.Lines))
	for _, l := range r.Lines {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, " / ")
}

// Actions produce the edit and delete targets for a record id.
type Actions struct {
	Edit   func(id string) string
	Delete func(id string) string
}

// List is the container rows are rendered into. Rendering replaces the
// previous contents entirely.
type List struct {
	rows []Row
}

func (l *List) Rows() []Row {
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

func (l *List) Len() int {
	return len(l.rows)
}

// Render replaces the list's rows with one row per record, in input order.
func Render[T entities.Record](l *List, class string, records []T, display Display[T], actions Actions) {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		id := rec.RecordID()
		lines, detail := display(rec)
		rows = append(rows, Row{
			ID:     id,
			Class:  class,
			Lines:  lines,
			Detail: detail,
			Edit:   Action{Label: "Edit", Target: actions.Edit(id)},
			Delete: Action{Label: "Delete", Target: actions.Delete(id)},
		})
	}
	l.rows = rows
}
