package dto

import (
	"time"

	"bookstore/internal/http-api/models"
)

type BorrowingResponse struct {
	ID         int64         `json:"id"`
	UserID     string        `json:"user_id"`
	BookID     int64         `json:"book_id"`
	Status     string        `json:"status"`
	BorrowDate time.Time     `json:"borrowDate"`
	DueDate    time.Time     `json:"dueDate"`
	ReturnDate *time.Time    `json:"returnDate,omitempty"`
	Book       *BookResponse `json:"book,omitempty"`
}

func FromBorrowing(b models.Borrowing) BorrowingResponse {
	resp := BorrowingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		BookID:     b.BookID,
		Status:     string(b.Status),
		BorrowDate: b.BorrowDate,
		DueDate:    b.DueDate,
		ReturnDate: b.ReturnDate,
	}
	if b.Book != nil {
		book := FromBook(*b.Book)
		resp.Book = &book
	}
	return resp
}

func FromBorrowings(borrowings []models.Borrowing) []BorrowingResponse {
	out := make([]BorrowingResponse, 0, len(borrowings))
	for _, b := range borrowings {
		out = append(out, FromBorrowing(b))
	}
	return out
}
