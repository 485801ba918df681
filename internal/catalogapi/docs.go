package catalogapi

import (
	"time"

	"github.com/mrlokans/catalog/internal/database"
)

// Documents mirror what the catalog contract sends: "_id" identifiers,
// snake_case fields, references either embedded or as plain ids.

type authorDoc struct {
	ID          string     `json:"_id"`
	FirstName   string     `json:"first_name"`
	FamilyName  string     `json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
}

type genreDoc struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type bookDoc struct {
	ID      string   `json:"_id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	ISBN    string   `json:"isbn"`
	Author  any      `json:"author"`
	Genre   []string `json:"genre"`
}

type instanceDoc struct {
	ID      string     `json:"_id"`
	Book    any        `json:"book"`
	Imprint string     `json:"imprint"`
	Status  string     `json:"status"`
	DueBack *time.Time `json:"due_back,omitempty"`
}

func newAuthorDoc(a database.Author) authorDoc {
	return authorDoc{
		ID:          a.ID,
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: utc(a.DateOfBirth),
		DateOfDeath: utc(a.DateOfDeath),
	}
}

func newGenreDoc(g database.Genre) genreDoc {
	return genreDoc{ID: g.ID, Name: g.Name}
}

// newBookDoc embeds the author document when it was loaded. Genres are
// always sent as ids.
func newBookDoc(b database.Book) bookDoc {
	doc := bookDoc{
		ID:      b.ID,
		Title:   b.Title,
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Author:  b.AuthorID,
		Genre:   make([]string, 0, len(b.Genres)),
	}
	if b.Author != nil {
		doc.Author = newAuthorDoc(*b.Author)
	}
	for _, g := range b.Genres {
		doc.Genre = append(doc.Genre, g.ID)
	}
	return doc
}

func newInstanceDoc(i database.BookInstance) instanceDoc {
	doc := instanceDoc{
		ID:      i.ID,
		Book:    i.BookID,
		Imprint: i.Imprint,
		Status:  i.Status,
		DueBack: utc(i.DueBack),
	}
	if i.Book != nil {
		doc.Book = newBookDoc(*i.Book)
	}
	return doc
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func mapDocs[M any, D any](models []M, fn func(M) D) []D {
	out := make([]D, 0, len(models))
	for _, m := range models {
		out = append(out, fn(m))
	}
	return out
}
