package entities

// Record is anything the catalog identifies by a server-assigned id.
type Record interface {
	RecordID() string
}

type InstanceStatus string

const (
	StatusAvailable   InstanceStatus = "Available"
	StatusMaintenance InstanceStatus = "Maintenance"
	StatusLoaned      InstanceStatus = "Loaned"
	StatusReserved    InstanceStatus = "Reserved"
)

// InstanceStatuses lists the statuses in selector order.
var InstanceStatuses = []InstanceStatus{
	StatusAvailable,
	StatusMaintenance,
	StatusLoaned,
	StatusReserved,
}

// Valid reports whether s is one of the four known statuses.
func (s InstanceStatus) Valid() bool {
	for _, known := range InstanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Author struct {
	ID          string `json:"_id"`
	FirstName   string `json:"first_name"`
	FamilyName  string `json:"family_name"`
	DateOfBirth *Date  `json:"date_of_birth,omitempty"`
	DateOfDeath *Date  `json:"date_of_death,omitempty"`
}

func (a Author) RecordID() string { return a.ID }

// FullName joins first and family name with a single space.
func (a Author) FullName() string {
	return a.FirstName + " " + a.FamilyName
}

type Genre struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (g Genre) RecordID() string { return g.ID }

type Book struct {
	ID      string  `json:"_id"`
	Title   string  `json:"title"`
	Summary string  `json:"summary"`
	ISBN    string  `json:"isbn"`
	Author  Ref     `json:"author"`
	Genre   RefList `json:"genre"`
}

func (b Book) RecordID() string { return b.ID }

// AuthorName returns the embedded author's full name, or "" when the list
// response carried only the author id.
func (b Book) AuthorName() string {
	var author Author
	if !b.Author.Decode(&author) {
		return ""
	}
	return author.FullName()
}

// UntitledBook stands in for an instance whose book is not embedded.
const UntitledBook = "Untitled Book"

type BookInstance struct {
	ID      string         `json:"_id"`
	Book    Ref            `json:"book"`
	Imprint string         `json:"imprint"`
	Status  InstanceStatus `json:"status"`
	DueBack *Date          `json:"due_back,omitempty"`
}

func (i BookInstance) RecordID() string { return i.ID }

// BookTitle returns the embedded book's title or UntitledBook.
func (i BookInstance) BookTitle() string {
	var book Book
	if i.Book.Decode(&book) && book.Title != "" {
		return book.Title
	}
	return UntitledBook
}

// FormOptions carries the reference lists used to fill form selectors.
type FormOptions struct {
	Authors []Author `json:"authors,omitempty"`
	Genres  []Genre  `json:"genres,omitempty"`
	Books   []Book   `json:"books,omitempty"`
}
