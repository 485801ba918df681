package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog rows use string identifiers assigned on insert, so the API can
// hand them out exactly like any other opaque id.

type Author struct {
	ID          string `gorm:"primaryKey"`
	FirstName   string `gorm:"not null"`
	FamilyName  string `gorm:"not null;index"`
	DateOfBirth *time.Time
	DateOfDeath *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

type Genre struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = newID()
	}
	return nil
}

type Book struct {
	ID        string `gorm:"primaryKey"`
	Title     string `gorm:"not null;index"`
	Summary   string
	ISBN      string
	AuthorID  string  `gorm:"index"`
	Author    *Author `gorm:"foreignKey:AuthorID"`
	Genres    []Genre `gorm:"many2many:book_genres"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = newID()
	}
	return nil
}

type BookInstance struct {
	ID        string `gorm:"primaryKey"`
	BookID    string `gorm:"index;not null"`
	Book      *Book  `gorm:"foreignKey:BookID"`
	Imprint   string `gorm:"not null"`
	Status    string `gorm:"not null;default:Maintenance"`
	DueBack   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *BookInstance) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = newID()
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}
