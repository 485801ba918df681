// Package library provides database operations for the catalog collections.
//
// Deletes are refused while other records still point at the target: an
// author with books, a genre used by a book, a book with copies.
package library

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AuthorFields are the editable fields of an author.
type AuthorFields struct {
	FirstName   string
	FamilyName  string
	DateOfBirth *time.Time
	DateOfDeath *time.Time
}

type BookFields struct {
	Title    string
	Summary  string
	ISBN     string
	AuthorID string
	GenreIDs []string
}

type InstanceFields struct {
	BookID  string
	Imprint string
	Status  string
	DueBack *time.Time
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Authors

func (r *Repository) ListAuthors() ([]database.Author, error) {
	var authors []database.Author
	err := r.db.Order("family_name, first_name").Find(&authors).Error
	return authors, err
}

func (r *Repository) GetAuthor(id string) (*database.Author, error) {
	var author database.Author
	if err := r.db.First(&author, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &author, nil
}

func (r *Repository) CreateAuthor(f AuthorFields) (*database.Author, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	author := &database.Author{}
	f.apply(author)
	if err := r.db.Create(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

func (r *Repository) UpdateAuthor(id string, f AuthorFields) (*database.Author, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	author, err := r.GetAuthor(id)
	if err != nil {
		return nil, err
	}
	f.apply(author)
	if err := r.db.Save(author).Error; err != nil {
		return nil, err
	}
	return author, nil
}

func (r *Repository) DeleteAuthor(id string) error {
	if _, err := r.GetAuthor(id); err != nil {
		return err
	}

	var books int64
	if err := r.db.Model(&database.Book{}).Where("author_id = ?", id).Count(&books).Error; err != nil {
		return err
	}
	if books > 0 {
		return &InUseError{Message: fmt.Sprintf("Author has %d book(s). Delete them first.", books)}
	}
	return r.db.Delete(&database.Author{}, "id = ?", id).Error
}

func (f AuthorFields) validate() error {
	switch {
	case strings.TrimSpace(f.FirstName) == "":
		return &ValidationError{Message: "First name must be specified."}
	case strings.TrimSpace(f.FamilyName) == "":
		return &ValidationError{Message: "Family name must be specified."}
	case f.DateOfBirth != nil && f.DateOfDeath != nil && f.DateOfDeath.Before(*f.DateOfBirth):
		return &ValidationError{Message: "Date of death is before date of birth."}
	}
	return nil
}

func (f AuthorFields) apply(a *database.Author) {
	a.FirstName = strings.TrimSpace(f.FirstName)
	a.FamilyName = strings.TrimSpace(f.FamilyName)
	a.DateOfBirth = f.DateOfBirth
	a.DateOfDeath = f.DateOfDeath
}

// Genres

func (r *Repository) ListGenres() ([]database.Genre, error) {
	var genres []database.Genre
	err := r.db.Order("name").Find(&genres).Error
	return genres, err
}

func (r *Repository) GetGenre(id string) (*database.Genre, error) {
	var genre database.Genre
	if err := r.db.First(&genre, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &genre, nil
}

func (r *Repository) CreateGenre(name string) (*database.Genre, error) {
	name, err := validGenreName(name)
	if err != nil {
		return nil, err
	}
	genre := &database.Genre{Name: name}
	if err := r.db.Create(genre).Error; err != nil {
		return nil, err
	}
	return genre, nil
}

func (r *Repository) UpdateGenre(id, name string) (*database.Genre, error) {
	name, err := validGenreName(name)
	if err != nil {
		return nil, err
	}
	genre, err := r.GetGenre(id)
	if err != nil {
		return nil, err
	}
	genre.Name = name
	if err := r.db.Save(genre).Error; err != nil {
		return nil, err
	}
	return genre, nil
}

func (r *Repository) DeleteGenre(id string) error {
	if _, err := r.GetGenre(id); err != nil {
		return err
	}

	var books int64
	if err := r.db.Table("book_genres").Where("genre_id = ?", id).Count(&books).Error; err != nil {
		return err
	}
	if books > 0 {
		return &InUseError{Message: fmt.Sprintf("Genre is used by %d book(s).", books)}
	}
	return r.db.Delete(&database.Genre{}, "id = ?", id).Error
}

func validGenreName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < 3 || len(name) > 100 {
		return "", &ValidationError{Message: "Genre name must contain between 3 and 100 characters."}
	}
	return name, nil
}

// Books

func (r *Repository) ListBooks() ([]database.Book, error) {
	var books []database.Book
	err := r.db.Preload("Author").Preload("Genres").Order("title").Find(&books).Error
	return books, err
}

func (r *Repository) GetBook(id string) (*database.Book, error) {
	var book database.Book
	if err := r.db.Preload("Author").Preload("Genres").First(&book, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &book, nil
}

func (r *Repository) CreateBook(f BookFields) (*database.Book, error) {
	book := &database.Book{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		genres, err := r.checkBook(tx, f)
		if err != nil {
			return err
		}
		f.apply(book)
		if err := tx.Omit("Author", "Genres").Create(book).Error; err != nil {
			return err
		}
		return replaceGenres(tx, book, genres)
	})
	if err != nil {
		return nil, err
	}
	return r.GetBook(book.ID)
}

func (r *Repository) UpdateBook(id string, f BookFields) (*database.Book, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book database.Book
		if err := tx.First(&book, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		genres, err := r.checkBook(tx, f)
		if err != nil {
			return err
		}
		f.apply(&book)
		if err := tx.Omit("Author", "Genres").Save(&book).Error; err != nil {
			return err
		}
		return replaceGenres(tx, &book, genres)
	})
	if err != nil {
		return nil, err
	}
	return r.GetBook(id)
}

func (r *Repository) DeleteBook(id string) error {
	book, err := r.GetBook(id)
	if err != nil {
		return err
	}

	var copies int64
	if err := r.db.Model(&database.BookInstance{}).Where("book_id = ?", id).Count(&copies).Error; err != nil {
		return err
	}
	if copies > 0 {
		return &InUseError{Message: fmt.Sprintf("Book has %d copies. Delete them first.", copies)}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(book).Association("Genres").Clear(); err != nil {
			return err
		}
		return tx.Delete(&database.Book{}, "id = ?", id).Error
	})
}

func replaceGenres(tx *gorm.DB, book *database.Book, genres []database.Genre) error {
	association := tx.Model(book).Association("Genres")
	if len(genres) == 0 {
		return association.Clear()
	}
	return association.Replace(genres)
}

// checkBook validates f and loads the genres it names.
func (r *Repository) checkBook(tx *gorm.DB, f BookFields) ([]database.Genre, error) {
	if strings.TrimSpace(f.Title) == "" {
		return nil, &ValidationError{Message: "Title must not be empty."}
	}
	if f.AuthorID == "" {
		return nil, &ValidationError{Message: "Author must not be empty."}
	}
	var authors int64
	if err := tx.Model(&database.Author{}).Where("id = ?", f.AuthorID).Count(&authors).Error; err != nil {
		return nil, err
	}
	if authors == 0 {
		return nil, &ValidationError{Message: "Author not found."}
	}

	genres := []database.Genre{}
	if len(f.GenreIDs) == 0 {
		return genres, nil
	}
	if err := tx.Where("id IN ?", f.GenreIDs).Find(&genres).Error; err != nil {
		return nil, err
	}
	if len(genres) != len(unique(f.GenreIDs)) {
		return nil, &ValidationError{Message: "Unknown genre."}
	}
	return genres, nil
}

func (f BookFields) apply(b *database.Book) {
	b.Title = strings.TrimSpace(f.Title)
	b.Summary = strings.TrimSpace(f.Summary)
	b.ISBN = strings.TrimSpace(f.ISBN)
	b.AuthorID = f.AuthorID
}

// Book instances

func (r *Repository) ListInstances() ([]database.BookInstance, error) {
	var instances []database.BookInstance
	err := r.db.Preload("Book").Order("created_at").Find(&instances).Error
	return instances, err
}

func (r *Repository) GetInstance(id string) (*database.BookInstance, error) {
	var instance database.BookInstance
	if err := r.db.Preload("Book").First(&instance, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &instance, nil
}

func (r *Repository) CreateInstance(f InstanceFields) (*database.BookInstance, error) {
	if err := r.checkInstance(&f); err != nil {
		return nil, err
	}
	instance := &database.BookInstance{}
	f.apply(instance)
	if err := r.db.Omit("Book").Create(instance).Error; err != nil {
		return nil, err
	}
	return r.GetInstance(instance.ID)
}

func (r *Repository) UpdateInstance(id string, f InstanceFields) (*database.BookInstance, error) {
	if err := r.checkInstance(&f); err != nil {
		return nil, err
	}
	var instance database.BookInstance
	if err := r.db.First(&instance, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	f.apply(&instance)
	if err := r.db.Omit("Book").Save(&instance).Error; err != nil {
		return nil, err
	}
	return r.GetInstance(id)
}

func (r *Repository) DeleteInstance(id string) error {
	result := r.db.Delete(&database.BookInstance{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) checkInstance(f *InstanceFields) error {
	if f.BookID == "" {
		return &ValidationError{Message: "Book must be specified."}
	}
	if strings.TrimSpace(f.Imprint) == "" {
		return &ValidationError{Message: "Imprint must be specified."}
	}
	if f.Status == "" {
		f.Status = string(entities.StatusMaintenance)
	}
	if !entities.InstanceStatus(f.Status).Valid() {
		return &ValidationError{Message: fmt.Sprintf("Unknown status %q.", f.Status)}
	}

	var books int64
	if err := r.db.Model(&database.Book{}).Where("id = ?", f.BookID).Count(&books).Error; err != nil {
		return err
	}
	if books == 0 {
		return &ValidationError{Message: "Book not found."}
	}
	return nil
}

func (f InstanceFields) apply(i *database.BookInstance) {
	i.BookID = f.BookID
	i.Imprint = strings.TrimSpace(f.Imprint)
	i.Status = f.Status
	i.DueBack = f.DueBack
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
