package models

import (
	"fmt"
	"strings"
)

// BookType is the discriminator stored in the book_type column. Every book
// lives in the single books table; the type only changes how it is presented.
type BookType string

const (
	BookTypePhysical  BookType = "PHYSICAL"
	BookTypeEBook     BookType = "EBOOK"
	BookTypeAudioBook BookType = "AUDIOBOOK"
)

// ParseBookType matches a tag case-insensitively. Unknown tags fall back to
// PHYSICAL rather than erroring.
func ParseBookType(tag string) BookType {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case string(BookTypeEBook):
		return BookTypeEBook
	case string(BookTypeAudioBook):
		return BookTypeAudioBook
	default:
		return BookTypePhysical
	}
}

// IsDigital reports whether copies of this type are licenses rather than
// physical stock.
func (t BookType) IsDigital() bool {
	return t == BookTypeEBook || t == BookTypeAudioBook
}

// Label is the human-readable type name shown in API responses.
func (t BookType) Label() string {
	switch t {
	case BookTypeEBook:
		return "eBook"
	case BookTypeAudioBook:
		return "Audiobook"
	default:
		return "Physical book"
	}
}

type Book struct {
	ID              int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string   `gorm:"not null" json:"title"`
	Author          string   `gorm:"not null" json:"author"`
	PublicationYear *int     `gorm:"column:publication_year" json:"publicationYear,omitempty"`
	Genre           *string  `gorm:"size:50" json:"genre,omitempty"`
	AvailableCopies int      `gorm:"column:available_copies;not null" json:"availableCopies"`
	TotalCopies     int      `gorm:"column:total_copies;not null" json:"totalCopies"`
	Type            BookType `gorm:"column:book_type;size:20;not null" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// NewBook constructs a book of the given type tag. All variants share the
// same fields; the tag fixes the presentation behavior.
func NewBook(typeTag, title, author string, availableCopies, totalCopies int) *Book {
	return &Book{
		Title:           title,
		Author:          author,
		AvailableCopies: availableCopies,
		TotalCopies:     totalCopies,
		Type:            ParseBookType(typeTag),
	}
}

// DisplayInfo renders the per-variant display string.
func (b *Book) DisplayInfo() string {
	switch b.Type {
	case BookTypeEBook:
		return fmt.Sprintf("Book %s by %s (Digital copy - %d licenses available)",
			b.Title, b.Author, b.AvailableCopies)
	case BookTypeAudioBook:
		return fmt.Sprintf("Book %s by %s (Audio format - %d licenses available)",
			b.Title, b.Author, b.AvailableCopies)
	default:
		return fmt.Sprintf("Book %s by %s (Physical copy - %d available)",
			b.Title, b.Author, b.AvailableCopies)
	}
}
