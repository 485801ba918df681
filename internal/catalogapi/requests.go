package catalogapi

import (
	"time"

	"github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/entities"
)

// Request bodies carry exactly the editable fields. Dates accept either a
// plain date or a full timestamp; null or "" leaves them unset.

type authorRequest struct {
	FirstName   string         `json:"first_name"`
	FamilyName  string         `json:"family_name"`
	DateOfBirth *entities.Date `json:"date_of_birth"`
	DateOfDeath *entities.Date `json:"date_of_death"`
}

func (r authorRequest) fields() library.AuthorFields {
	return library.AuthorFields{
		FirstName:   r.FirstName,
		FamilyName:  r.FamilyName,
		DateOfBirth: timeOf(r.DateOfBirth),
		DateOfDeath: timeOf(r.DateOfDeath),
	}
}

type genreRequest struct {
	Name string `json:"name"`
}

type bookRequest struct {
	Title   string           `json:"title"`
	Author  entities.Ref     `json:"author"`
	Summary string           `json:"summary"`
	ISBN    string           `json:"isbn"`
	Genre   entities.RefList `json:"genre"`
}

func (r bookRequest) fields() library.BookFields {
	return library.BookFields{
		Title:    r.Title,
		Summary:  r.Summary,
		ISBN:     r.ISBN,
		AuthorID: r.Author.ID(),
		GenreIDs: r.Genre.IDs(),
	}
}

type instanceRequest struct {
	Book    entities.Ref   `json:"book"`
	Imprint string         `json:"imprint"`
	Status  string         `json:"status"`
	DueBack *entities.Date `json:"due_back"`
}

func (r instanceRequest) fields() library.InstanceFields {
	return library.InstanceFields{
		BookID:  r.Book.ID(),
		Imprint: r.Imprint,
		Status:  r.Status,
		DueBack: timeOf(r.DueBack),
	}
}

func timeOf(d *entities.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.UTC()
	return &t
}
