package dto

import "bookstore/internal/http-api/models"

// BookRequest: payload for book creation and update. BookType is only read on
// creation; the type of an existing book never changes.
type BookRequest struct {
	Title           string  `json:"title" binding:"required"`
	Author          string  `json:"author" binding:"required"`
	PublicationYear *int    `json:"publicationYear,omitempty"`
	Genre           *string `json:"genre,omitempty"`
	TotalCopies     int     `json:"totalCopies" binding:"required,min=0"`
	BookType        string  `json:"bookType,omitempty"`
}

// BookResponse carries the stored fields plus the type-derived presentation
// fields.
type BookResponse struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	PublicationYear *int    `json:"publicationYear,omitempty"`
	Genre           *string `json:"genre,omitempty"`
	AvailableCopies int     `json:"availableCopies"`
	TotalCopies     int     `json:"totalCopies"`
	BookType        string  `json:"bookType"`
	IsDigital       bool    `json:"isDigital"`
	DisplayInfo     string  `json:"displayInfo"`
}

func FromBook(b models.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Genre:           b.Genre,
		AvailableCopies: b.AvailableCopies,
		TotalCopies:     b.TotalCopies,
		BookType:        b.Type.Label(),
		IsDigital:       b.Type.IsDigital(),
		DisplayInfo:     b.DisplayInfo(),
	}
}

func FromBooks(books []models.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, FromBook(b))
	}
	return out
}
