package library

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/database"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_Authors(t *testing.T) {
	repo := setupTestRepo(t)

	t.Run("create assigns an id", func(t *testing.T) {
		a, err := repo.CreateAuthor(AuthorFields{FirstName: " Jane ", FamilyName: "Austen", DateOfBirth: day(1775, time.December, 16)})
		require.NoError(t, err)
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, "Jane", a.FirstName)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := repo.CreateAuthor(AuthorFields{FirstName: "Jane"})
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "Family name must be specified.", vErr.Message)

		_, err = repo.CreateAuthor(AuthorFields{FirstName: "A", FamilyName: "B", DateOfBirth: day(1900, 1, 1), DateOfDeath: day(1800, 1, 1)})
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("update clears optional dates", func(t *testing.T) {
		a, err := repo.CreateAuthor(AuthorFields{FirstName: "Mary", FamilyName: "Shelley", DateOfBirth: day(1797, time.August, 30)})
		require.NoError(t, err)

		updated, err := repo.UpdateAuthor(a.ID, AuthorFields{FirstName: "Mary", FamilyName: "Wollstonecraft Shelley"})
		require.NoError(t, err)
		assert.Nil(t, updated.DateOfBirth)

		reloaded, err := repo.GetAuthor(a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Wollstonecraft Shelley", reloaded.FamilyName)
		assert.Nil(t, reloaded.DateOfBirth)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.UpdateAuthor("missing", AuthorFields{FirstName: "A", FamilyName: "B"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.DeleteAuthor("missing"), ErrNotFound)
	})
}

func TestRepository_ReferentialDeletes(t *testing.T) {
	repo := setupTestRepo(t)

	author, err := repo.CreateAuthor(AuthorFields{FirstName: "Jane", FamilyName: "Austen"})
	require.NoError(t, err)
	novel, err := repo.CreateGenre("Novel")
	require.NoError(t, err)
	book, err := repo.CreateBook(BookFields{Title: "Emma", AuthorID: author.ID, GenreIDs: []string{novel.ID}})
	require.NoError(t, err)
	instance, err := repo.CreateInstance(InstanceFields{BookID: book.ID, Imprint: "Penguin", Status: "Available"})
	require.NoError(t, err)

	var inUse *InUseError
	require.True(t, errors.As(repo.DeleteAuthor(author.ID), &inUse))
	assert.Contains(t, inUse.Message, "1 book")
	require.True(t, errors.As(repo.DeleteGenre(novel.ID), &inUse))
	require.True(t, errors.As(repo.DeleteBook(book.ID), &inUse))

	require.NoError(t, repo.DeleteInstance(instance.ID))
	assert.ErrorIs(t, repo.DeleteInstance(instance.ID), ErrNotFound)
	require.NoError(t, repo.DeleteBook(book.ID))
	require.NoError(t, repo.DeleteGenre(novel.ID))
	require.NoError(t, repo.DeleteAuthor(author.ID))
}

func TestRepository_Books(t *testing.T) {
	repo := setupTestRepo(t)

	author, err := repo.CreateAuthor(AuthorFields{FirstName: "Jane", FamilyName: "Austen"})
	require.NoError(t, err)
	g1, _ := repo.CreateGenre("Novel")
	g2, _ := repo.CreateGenre("Romance")

	book, err := repo.CreateBook(BookFields{Title: "Emma", AuthorID: author.ID, GenreIDs: []string{g1.ID}})
	require.NoError(t, err)
	require.NotNil(t, book.Author)
	assert.Equal(t, "Austen", book.Author.FamilyName)
	require.Len(t, book.Genres, 1)

	updated, err := repo.UpdateBook(book.ID, BookFields{Title: "Emma", AuthorID: author.ID, GenreIDs: []string{g2.ID}})
	require.NoError(t, err)
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, g2.ID, updated.Genres[0].ID)

	cleared, err := repo.UpdateBook(book.ID, BookFields{Title: "Emma", AuthorID: author.ID})
	require.NoError(t, err)
	assert.Empty(t, cleared.Genres)

	var vErr *ValidationError
	_, err = repo.CreateBook(BookFields{Title: "Orphan", AuthorID: "missing"})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Author not found.", vErr.Message)

	_, err = repo.CreateBook(BookFields{Title: "Odd", AuthorID: author.ID, GenreIDs: []string{"nope"}})
	assert.True(t, errors.As(err, &vErr))

	books, err := repo.ListBooks()
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestRepository_Instances(t *testing.T) {
	repo := setupTestRepo(t)

	author, _ := repo.CreateAuthor(AuthorFields{FirstName: "Jane", FamilyName: "Austen"})
	book, err := repo.CreateBook(BookFields{Title: "Emma", AuthorID: author.ID})
	require.NoError(t, err)

	instance, err := repo.CreateInstance(InstanceFields{BookID: book.ID, Imprint: "Penguin"})
	require.NoError(t, err)
	assert.Equal(t, "Maintenance", instance.Status)
	require.NotNil(t, instance.Book)
	assert.Equal(t, "Emma", instance.Book.Title)

	_, err = repo.CreateInstance(InstanceFields{BookID: book.ID, Imprint: "Penguin", Status: "Lost"})
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))

	_, err = repo.CreateInstance(InstanceFields{Imprint: "Penguin"})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Book must be specified.", vErr.Message)

	updated, err := repo.UpdateInstance(instance.ID, InstanceFields{BookID: book.ID, Imprint: "Folio", Status: "Loaned", DueBack: day(2024, time.March, 5)})
	require.NoError(t, err)
	assert.Equal(t, "Folio", updated.Imprint)
	require.NotNil(t, updated.DueBack)
}

func TestRepository_SeedAndReset(t *testing.T) {
	repo := setupTestRepo(t)

	seeded, err := repo.SeedIfEmpty()
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = repo.SeedIfEmpty()
	require.NoError(t, err)
	assert.False(t, seeded)

	g, err := repo.CreateGenre("Poetry")
	require.NoError(t, err)

	require.NoError(t, repo.Reset())
	_, err = repo.GetGenre(g.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	authors, err := repo.ListAuthors()
	require.NoError(t, err)
	assert.Len(t, authors, len(sampleAuthors))
	assert.Equal(t, "Austen", authors[0].FamilyName)
}
