package catalogapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/library"
)

// Store is what the handlers need from the catalog repository.
type Store interface {
	ListAuthors() ([]database.Author, error)
	CreateAuthor(f library.AuthorFields) (*database.Author, error)
	UpdateAuthor(id string, f library.AuthorFields) (*database.Author, error)
	DeleteAuthor(id string) error

	ListGenres() ([]database.Genre, error)
	CreateGenre(name string) (*database.Genre, error)
	UpdateGenre(id, name string) (*database.Genre, error)
	DeleteGenre(id string) error

	ListBooks() ([]database.Book, error)
	CreateBook(f library.BookFields) (*database.Book, error)
	UpdateBook(id string, f library.BookFields) (*database.Book, error)
	DeleteBook(id string) error

	ListInstances() ([]database.BookInstance, error)
	CreateInstance(f library.InstanceFields) (*database.BookInstance, error)
	UpdateInstance(id string, f library.InstanceFields) (*database.BookInstance, error)
	DeleteInstance(id string) error
}

// errorKey is the JSON key a failure message travels under. Author deletes
// answer with "error", everything else with "message".
type errorKey string

const (
	keyError   errorKey = "error"
	keyMessage errorKey = "message"
)

type Controller struct {
	store Store
}

func NewController(store Store) *Controller {
	return &Controller{store: store}
}

func respondFailure(c *gin.Context, key errorKey, err error, resource string) {
	var vErr *library.ValidationError
	var inUse *library.InUseError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{string(key): vErr.Message})
	case errors.As(err, &inUse):
		c.JSON(http.StatusBadRequest, gin.H{string(key): inUse.Message})
	case errors.Is(err, library.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{string(key): resource + " not found"})
	default:
		log.Printf("[CATALOG API] Internal error (%s): %v", resource, err)
		c.JSON(http.StatusInternalServerError, gin.H{string(key): "internal server error"})
	}
}

func bindBody(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{string(keyMessage): "Invalid request body: " + err.Error()})
		return false
	}
	return true
}

// Authors

func (ctrl *Controller) ListAuthors(c *gin.Context) {
	authors, err := ctrl.store.ListAuthors()
	if err != nil {
		respondFailure(c, keyMessage, err, "Authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"author_list": mapDocs(authors, newAuthorDoc)})
}

func (ctrl *Controller) CreateAuthor(c *gin.Context) {
	var req authorRequest
	if !bindBody(c, &req) {
		return
	}
	author, err := ctrl.store.CreateAuthor(req.fields())
	if err != nil {
		respondFailure(c, keyMessage, err, "Author")
		return
	}
	c.JSON(http.StatusCreated, newAuthorDoc(*author))
}

func (ctrl *Controller) UpdateAuthor(c *gin.Context) {
	var req authorRequest
	if !bindBody(c, &req) {
		return
	}
	author, err := ctrl.store.UpdateAuthor(c.Param("id"), req.fields())
	if err != nil {
		respondFailure(c, keyMessage, err, "Author")
		return
	}
	c.JSON(http.StatusOK, newAuthorDoc(*author))
}

func (ctrl *Controller) DeleteAuthor(c *gin.Context) {
	if err := ctrl.store.DeleteAuthor(c.Param("id")); err != nil {
		respondFailure(c, keyError, err, "Author")
		return
	}
	c.Status(http.StatusNoContent)
}

// Genres

func (ctrl *Controller) ListGenres(c *gin.Context) {
	genres, err := ctrl.store.ListGenres()
	if err != nil {
		respondFailure(c, keyMessage, err, "Genres")
		return
	}
	c.JSON(http.StatusOK, gin.H{"genre_list": mapDocs(genres, newGenreDoc)})
}

func (ctrl *Controller) CreateGenre(c *gin.Context) {
	var req genreRequest
	if !bindBody(c, &req) {
		return
	}
	genre, err := ctrl.store.CreateGenre(req.Name)
	if err != nil {
		respondFailure(c, keyMessage, err, "Genre")
		return
	}
	c.JSON(http.StatusCreated, newGenreDoc(*genre))
}

func (ctrl *Controller) UpdateGenre(c *gin.Context) {
	var req genreRequest
	if !bindBody(c, &req) {
		return
	}
	genre, err := ctrl.store.UpdateGenre(c.Param("id"), req.Name)
	if err != nil {
		respondFailure(c, keyMessage, err, "Genre")
		return
	}
	c.JSON(http.StatusOK, newGenreDoc(*genre))
}

func (ctrl *Controller) DeleteGenre(c *gin.Context) {
	if err := ctrl.store.DeleteGenre(c.Param("id")); err != nil {
		respondFailure(c, keyMessage, err, "Genre")
		return
	}
	c.Status(http.StatusNoContent)
}

// Books

func (ctrl *Controller) ListBooks(c *gin.Context) {
	books, err := ctrl.store.ListBooks()
	if err != nil {
		respondFailure(c, keyMessage, err, "Books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"book_list": mapDocs(books, newBookDoc)})
}

func (ctrl *Controller) CreateBook(c *gin.Context) {
	var req bookRequest
	if !bindBody(c, &req) {
		return
	}
	book, err := ctrl.store.CreateBook(req.fields())
	if err != nil {
		respondFailure(c, keyMessage, err, "Book")
		return
	}
	c.JSON(http.StatusCreated, newBookDoc(*book))
}

func (ctrl *Controller) UpdateBook(c *gin.Context) {
	var req bookRequest
	if !bindBody(c, &req) {
		return
	}
	book, err := ctrl.store.UpdateBook(c.Param("id"), req.fields())
	if err != nil {
		respondFailure(c, keyMessage, err, "Book")
		return
	}
	c.JSON(http.StatusOK, newBookDoc(*book))
}

func (ctrl *Controller) DeleteBook(c *gin.Context) {
	if err := ctrl.store.DeleteBook(c.Param("id")); err != nil {
		respondFailure(c, keyMessage, err, "Book")
		return
	}
	c.Status(http.StatusNoContent)
}

// BookCreateForm lists the authors and genres a book form offers.
func (ctrl *Controller) BookCreateForm(c *gin.Context) {
	authors, err := ctrl.store.ListAuthors()
	if err != nil {
		respondFailure(c, keyMessage, err, "Authors")
		return
	}
	genres, err := ctrl.store.ListGenres()
	if err != nil {
		respondFailure(c, keyMessage, err, "Genres")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authors": mapDocs(authors, newAuthorDoc),
		"genres":  mapDocs(genres, newGenreDoc),
	})
}

// Book instances

func (ctrl *Controller) ListInstances(c *gin.Context) {
	instances, err := ctrl.store.ListInstances()
	if err != nil {
		respondFailure(c, keyMessage, err, "Book instances")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookinstance_list": mapDocs(instances, newInstanceDoc)})
}

func (ctrl *Controller) CreateInstance(c *gin.Context) {
	var req instanceRequest
	if !bindBody(c, &req) {
		return
	}
	instance, err := ctrl.store.CreateInstance(req.fields())
	if err != nil {
		respondFailure(c, keyMessage, err, "Book instance")
		return
	}
	c.JSON(http.StatusCreated, newInstanceDoc(*instance))
}

func (ctrl *Controller) UpdateInstance(c *gin.Context) {
	var req instanceRequest
	if !bindBody(c, &req) {
		return
	}
	instance, err := ctrl.store.UpdateInstance(c.Param("id"), req.fields())
	if err != nil {
		respondFailure(c, keyMessage, err, "Book instance")
		return
	}
	c.JSON(http.StatusOK, newInstanceDoc(*instance))
}

func (ctrl *Controller) DeleteInstance(c *gin.Context) {
	if err := ctrl.store.DeleteInstance(c.Param("id")); err != nil {
		respondFailure(c, keyMessage, err, "Book instance")
		return
	}
	c.Status(http.StatusNoContent)
}

// InstanceCreateForm lists the books an instance form offers.
func (ctrl *Controller) InstanceCreateForm(c *gin.Context) {
	books, err := ctrl.store.ListBooks()
	if err != nil {
		respondFailure(c, keyMessage, err, "Books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": mapDocs(books, newBookDoc)})
}
