package service

import (
	"context"
	"errors"
	"strings"

	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/repository"
)

var ErrBookNotFound = errors.New("Book not found")

type BookService interface {
	GetAll(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, title, author string, publicationYear *int, genre *string, totalCopies int, bookType string) (*models.Book, error)
	Update(ctx context.Context, id int64, title, author string, publicationYear *int, genre *string, totalCopies int) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]models.Book, error)
	GetByGenre(ctx context.Context, genre string) ([]models.Book, error)
	GetAvailable(ctx context.Context) ([]models.Book, error)
	IsAvailable(ctx context.Context, id int64) (bool, error)
}

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) GetAll(ctx context.Context) ([]models.Book, error) {
	return s.repo.GetAll(ctx)
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// Create builds a book from the type tag; all copies start available.
func (s *bookService) Create(ctx context.Context, title, author string, publicationYear *int, genre *string, totalCopies int, bookType string) (*models.Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("title is required")
	}
	if strings.TrimSpace(author) == "" {
		return nil, errors.New("author is required")
	}
	if totalCopies < 0 {
		return nil, errors.New("totalCopies must not be negative")
	}

	book := models.NewBook(bookType, title, author, totalCopies, totalCopies)
	book.PublicationYear = publicationYear
	book.Genre = genre

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Update rewrites the book's descriptive fields and recomputes availability
// so the number of currently borrowed copies is preserved. The type is
// immutable after creation.
func (s *bookService) Update(ctx context.Context, id int64, title, author string, publicationYear *int, genre *string, totalCopies int) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookNotFound
	}

	borrowedCopies := book.TotalCopies - book.AvailableCopies

	book.Title = title
	book.Author = author
	book.PublicationYear = publicationYear
	book.Genre = genre
	book.TotalCopies = totalCopies
	// clamp so availability never goes negative
	book.AvailableCopies = max(0, totalCopies-borrowedCopies)

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrBookNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Search matches title, author or genre. A blank term returns all books, not
// an empty result.
func (s *bookService) Search(ctx context.Context, term string) ([]models.Book, error) {
	if strings.TrimSpace(term) == "" {
		return s.repo.GetAll(ctx)
	}
	return s.repo.Search(ctx, strings.TrimSpace(term))
}

func (s *bookService) GetByGenre(ctx context.Context, genre string) ([]models.Book, error) {
	return s.repo.GetByGenre(ctx, genre)
}

func (s *bookService) GetAvailable(ctx context.Context) ([]models.Book, error) {
	return s.repo.GetAvailable(ctx)
}

// IsAvailable is false when the book is absent or has no free copies.
func (s *bookService) IsAvailable(ctx context.Context, id int64) (bool, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, nil
	}
	return book.AvailableCopies > 0, nil
}
