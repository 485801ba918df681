package library

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
)

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type sampleBook struct {
	title, summary, isbn string
	author               int
	genres               []int
	copies               []InstanceFields
}

var (
	sampleAuthors = []AuthorFields{
		{FirstName: "Jane", FamilyName: "Austen", DateOfBirth: day(1775, time.December, 16), DateOfDeath: day(1817, time.July, 18)},
		{FirstName: "Mary", FamilyName: "Shelley", DateOfBirth: day(1797, time.August, 30), DateOfDeath: day(1851, time.February, 1)},
		{FirstName: "Ursula", FamilyName: "Le Guin", DateOfBirth: day(1929, time.October, 21), DateOfDeath: day(2018, time.January, 22)},
		{FirstName: "Terry", FamilyName: "Pratchett", DateOfBirth: day(1948, time.April, 28), DateOfDeath: day(2015, time.March, 12)},
	}

	sampleGenres = []string{"Novel", "Gothic", "Fantasy", "Science Fiction"}

	sampleBooks = []sampleBook{
		{
			title:   "Emma",
			summary: "A young woman's misguided matchmaking in a quiet English village.",
			isbn:    "9780141439587",
			author:  0,
			genres:  []int{0},
			copies: []InstanceFields{
				{Imprint: "Penguin Classics, 2003", Status: "Available"},
				{Imprint: "Oxford World's Classics, 2008", Status: "Loaned", DueBack: day(2024, time.March, 5)},
			},
		},
		{
			title:   "Frankenstein",
			summary: "A scientist creates life and is destroyed by what he has made.",
			isbn:    "9780141439471",
			author:  1,
			genres:  []int{0, 1, 3},
			copies: []InstanceFields{
				{Imprint: "Penguin Classics, 2003", Status: "Maintenance"},
			},
		},
		{
			title:   "A Wizard of Earthsea",
			summary: "A young mage must hunt down the shadow he unleashed.",
			isbn:    "9780547773742",
			author:  2,
			genres:  []int{2},
			copies: []InstanceFields{
				{Imprint: "Houghton Mifflin Harcourt, 2012", Status: "Reserved"},
			},
		},
		{
			title:   "The Left Hand of Darkness",
			summary: "An envoy tries to bring a planet of ambisexual people into an interstellar union.",
			isbn:    "9780441478125",
			author:  2,
			genres:  []int{3},
		},
		{
			title:   "Mort",
			summary: "Death takes on an apprentice.",
			isbn:    "9780552131063",
			author:  3,
			genres:  []int{2},
			copies: []InstanceFields{
				{Imprint: "Corgi, 1988", Status: "Available"},
			},
		},
	}
)

// SeedIfEmpty loads the sample catalog when there are no authors yet. It
// reports whether anything was written.
func (r *Repository) SeedIfEmpty() (bool, error) {
	var authors int64
	if err := r.db.Model(&database.Author{}).Count(&authors).Error; err != nil {
		return false, err
	}
	if authors > 0 {
		return false, nil
	}
	return true, r.Seed()
}

// Seed inserts the sample catalog.
func (r *Repository) Seed() error {
	authorIDs := make([]string, 0, len(sampleAuthors))
	for _, f := range sampleAuthors {
		a, err := r.CreateAuthor(f)
		if err != nil {
			return fmt.Errorf("failed to seed author %s: %w", f.FamilyName, err)
		}
		authorIDs = append(authorIDs, a.ID)
	}

	genreIDs := make([]string, 0, len(sampleGenres))
	for _, name := range sampleGenres {
		g, err := r.CreateGenre(name)
		if err != nil {
			return fmt.Errorf("failed to seed genre %s: %w", name, err)
		}
		genreIDs = append(genreIDs, g.ID)
	}

	var copies int
	for _, sb := range sampleBooks {
		f := BookFields{Title: sb.title, Summary: sb.summary, ISBN: sb.isbn, AuthorID: authorIDs[sb.author]}
		for _, g := range sb.genres {
			f.GenreIDs = append(f.GenreIDs, genreIDs[g])
		}
		b, err := r.CreateBook(f)
		if err != nil {
			return fmt.Errorf("failed to seed book %s: %w", sb.title, err)
		}
		for _, c := range sb.copies {
			c.BookID = b.ID
			if _, err := r.CreateInstance(c); err != nil {
				return fmt.Errorf("failed to seed copy of %s: %w", sb.title, err)
			}
			copies++
		}
	}

	log.Printf("[SEED] Loaded %d authors, %d genres, %d books, %d copies",
		len(sampleAuthors), len(sampleGenres), len(sampleBooks), copies)
	return nil
}

// Reset wipes every catalog table and reseeds.
func (r *Repository) Reset() error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"book_instances", "book_genres", "books", "genres", "authors"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.Seed()
}
