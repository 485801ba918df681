package panel

import (
	"net/url"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
)

func AuthorConfig() Config[entities.Author] {
	return Config[entities.Author]{
		Descriptor: catalog.Authors,
		Title:      "Authors",
		Container:  "authorContainer",
		RowClass:   "author",
		Form: Form{
			ID:           "authorCreationForm",
			ModalID:      "authorCreationModal",
			SubmitID:     "submitAuthorButton",
			TriggerID:    "createAuthorButton",
			TriggerLabel: "Create New Author",
			Fields: []Field{
				{ID: "firstNameInput", Name: "first_name", Label: "First Name", Kind: KindText},
				{ID: "familyNameInput", Name: "family_name", Label: "Family Name", Kind: KindText},
				{ID: "dobInput", Name: "date_of_birth", Label: "Date of Birth", Kind: KindDate, Nullable: true},
				{ID: "dodInput", Name: "date_of_death", Label: "Date of Death", Kind: KindDate, Nullable: true},
			},
		},
		Display: func(a entities.Author) ([]Line, string) {
			lines := []Line{{Class: "text-content", Text: a.FullName()}}
			return lines, a.DateOfBirth.Display() + " - " + a.DateOfDeath.Display()
		},
		Values: func(a entities.Author) url.Values {
			return url.Values{
				"first_name":    {a.FirstName},
				"family_name":   {a.FamilyName},
				"date_of_birth": {a.DateOfBirth.Input()},
				"date_of_death": {a.DateOfDeath.Input()},
			}
		},
	}
}

func BookConfig() Config[entities.Book] {
	return Config[entities.Book]{
		Descriptor: catalog.Books,
		Title:      "Books",
		Container:  "bookContainer",
		RowClass:   "book",
		Form: Form{
			ID:           "bookCreationForm",
			ModalID:      "bookCreationModal",
			SubmitID:     "submitBookButton",
			TriggerID:    "createBookButton",
			TriggerLabel: "Create New Book",
			Fields: []Field{
				{ID: "titleInput", Name: "title", Label: "Title", Kind: KindText},
				{ID: "authorSelect", Name: "author", Label: "Author", Kind: KindSelect,
					Reference: &Reference{Source: SourceAuthors}},
				{ID: "summaryTextarea", Name: "summary", Label: "Summary", Kind: KindTextArea},
				{ID: "isbnInput", Name: "isbn", Label: "ISBN", Kind: KindText},
				{ID: "genreCheckboxes", Name: "genre", Label: "Genres", Kind: KindCheckboxes,
					Reference: &Reference{Source: SourceGenres, Many: true}},
			},
		},
		Display: func(b entities.Book) ([]Line, string) {
			return []Line{
				{Class: "book-title", Text: b.Title},
				{Class: "book-authors", Text: b.AuthorName()},
			}, b.ISBN
		},
		Values: func(b entities.Book) url.Values {
			return url.Values{
				"title":   {b.Title},
				"author":  {b.Author.ID()},
				"summary": {b.Summary},
				"isbn":    {b.ISBN},
				"genre":   b.Genre.IDs(),
			}
		},
	}
}

func BookInstanceConfig() Config[entities.BookInstance] {
	statuses := make([]Option, 0, len(entities.InstanceStatuses))
	for _, s := range entities.InstanceStatuses {
		statuses = append(statuses, Option{Value: string(s), Label: string(s)})
	}

	return Config[entities.BookInstance]{
		Descriptor: catalog.BookInstances,
		Title:      "Book Instances",
		Container:  "bookInstanceContainer",
		RowClass:   "book-instance",
		Form: Form{
			ID:           "bookInstanceCreationForm",
			ModalID:      "bookInstanceCreationModal",
			SubmitID:     "submitBookInstanceButton",
			TriggerID:    "createBookInstanceButton",
			TriggerLabel: "Create New Book Instance",
			Fields: []Field{
				{ID: "bookSelect", Name: "book", Label: "Book", Kind: KindSelect,
					Reference: &Reference{Source: SourceBooks, Required: true, RequiredMessage: "Please select a book."}},
				{ID: "imprintInput", Name: "imprint", Label: "Imprint", Kind: KindText},
				{ID: "statusInput", Name: "status", Label: "Status", Kind: KindEnum, Choices: statuses},
				{ID: "dueBackInput", Name: "due_back", Label: "Due Back", Kind: KindDate, Nullable: true},
			},
		},
		Display: func(i entities.BookInstance) ([]Line, string) {
			return []Line{
				{Class: "book-instance-title", Text: i.BookTitle()},
				{Class: "book-instance-imprint", Text: i.Imprint},
				{Class: "book-instance-status", Text: string(i.Status)},
				{Class: "book-instance-due-back", Text: i.DueBack.Display()},
			}, ""
		},
		Values: func(i entities.BookInstance) url.Values {
			return url.Values{
				"book":     {i.Book.ID()},
				"imprint":  {i.Imprint},
				"status":   {string(i.Status)},
				"due_back": {i.DueBack.Input()},
			}
		},
	}
}

func GenreConfig() Config[entities.Genre] {
	return Config[entities.Genre]{
		Descriptor: catalog.Genres,
		Title:      "Genres",
		Container:  "genreContainer",
		RowClass:   "genre",
		Form: Form{
			ID:           "genreCreationForm",
			ModalID:      "genreCreationModal",
			SubmitID:     "submitGenreButton",
			TriggerID:    "createGenreButton",
			TriggerLabel: "Create New Genre",
			Fields: []Field{
				{ID: "nameInput", Name: "name", Label: "Genre Name", Kind: KindText},
			},
		},
		Display: func(g entities.Genre) ([]Line, string) {
			return []Line{{Class: "text-content", Text: g.Name}}, ""
		},
		Values: func(g entities.Genre) url.Values {
			return url.Values{"name": {g.Name}}
		},
	}
}
