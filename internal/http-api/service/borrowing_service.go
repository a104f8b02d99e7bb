package service

import (
	"context"
	"errors"
	"time"

	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/repository"
)

var (
	ErrBookNotAvailable  = errors.New("Book is not available")
	ErrAlreadyBorrowed   = errors.New("You already have this book borrowed or reserved")
	ErrBorrowingNotFound = errors.New("Borrowing not found")
	ErrNotYourBorrowing  = errors.New("This borrowing does not belong to you")
	ErrAlreadyReturned   = errors.New("Book is already returned")
)

type BorrowingService interface {
	Borrow(ctx context.Context, userID string, bookID int64) (*models.Borrowing, error)
	Return(ctx context.Context, userID string, borrowingID int64) (*models.Borrowing, error)
	History(ctx context.Context, userID string) ([]models.Borrowing, error)
	Active(ctx context.Context, userID string) ([]models.Borrowing, error)
	GetByID(ctx context.Context, id int64) (*models.Borrowing, error)
	GetAll(ctx context.Context) ([]models.Borrowing, error)
	Overdue(ctx context.Context) ([]models.Borrowing, error)
	SweepOverdue(ctx context.Context) error
}

type borrowingService struct {
	repo       repository.BorrowingRepository
	bookRepo   repository.BookRepository
	loanPeriod time.Duration
}

func NewBorrowingService(repo repository.BorrowingRepository, bookRepo repository.BookRepository, loanPeriodDays int) BorrowingService {
	return &borrowingService{
		repo:       repo,
		bookRepo:   bookRepo,
		loanPeriod: time.Duration(loanPeriodDays) * 24 * time.Hour,
	}
}

// Borrow takes one copy of the book for the user. The copy decrement and the
// borrowing insert happen in one transaction; concurrent borrows of the last
// copy resolve to exactly one winner.
func (s *borrowingService) Borrow(ctx context.Context, userID string, bookID int64) (*models.Borrowing, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, ErrBookNotFound
	}

	if book.AvailableCopies <= 0 {
		return nil, ErrBookNotAvailable
	}

	// one active borrowing per (user, book)
	active, err := s.repo.ExistsActive(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrAlreadyBorrowed
	}

	today := truncateToDay(time.Now())
	borrowing := &models.Borrowing{
		UserID:     userID,
		BookID:     bookID,
		Status:     models.StatusBorrowed,
		BorrowDate: today,
		DueDate:    today.Add(s.loanPeriod),
	}

	if err := s.repo.Borrow(ctx, borrowing); err != nil {
		if errors.Is(err, repository.ErrNoCopies) {
			// lost the race for the last copy
			return nil, ErrBookNotAvailable
		}
		if errors.Is(err, repository.ErrActiveExists) {
			// a concurrent borrow by the same user got there first
			return nil, ErrAlreadyBorrowed
		}
		return nil, err
	}

	return borrowing, nil
}

// Return closes the borrowing and gives the copy back. Returning an OVERDUE
// borrowing is allowed; only already-returned ones are rejected. The status
// flip and the copy increment happen in one transaction; concurrent returns
// of the same borrowing resolve to exactly one winner.
func (s *borrowingService) Return(ctx context.Context, userID string, borrowingID int64) (*models.Borrowing, error) {
	borrowing, err := s.repo.GetByID(ctx, borrowingID)
	if err != nil {
		return nil, ErrBorrowingNotFound
	}

	if borrowing.UserID != userID {
		return nil, ErrNotYourBorrowing
	}

	if borrowing.Status == models.StatusReturned {
		return nil, ErrAlreadyReturned
	}

	now := truncateToDay(time.Now())
	borrowing.Status = models.StatusReturned
	borrowing.ReturnDate = &now

	if err := s.repo.Return(ctx, borrowing); err != nil {
		if errors.Is(err, repository.ErrAlreadyReturned) {
			// a concurrent return closed the borrowing between the read
			// above and the transaction
			return nil, ErrAlreadyReturned
		}
		return nil, err
	}

	return borrowing, nil
}

func (s *borrowingService) History(ctx context.Context, userID string) ([]models.Borrowing, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *borrowingService) Active(ctx context.Context, userID string) ([]models.Borrowing, error) {
	return s.repo.GetByUserAndStatus(ctx, userID, models.StatusBorrowed)
}

func (s *borrowingService) GetByID(ctx context.Context, id int64) (*models.Borrowing, error) {
	borrowing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBorrowingNotFound
	}
	return borrowing, nil
}

func (s *borrowingService) GetAll(ctx context.Context) ([]models.Borrowing, error) {
	return s.repo.GetAll(ctx)
}

func (s *borrowingService) Overdue(ctx context.Context) ([]models.Borrowing, error) {
	return s.repo.GetByStatus(ctx, models.StatusOverdue)
}

// SweepOverdue flips BORROWED borrowings past their due date to OVERDUE.
// Idempotent: rows already OVERDUE are never touched again.
func (s *borrowingService) SweepOverdue(ctx context.Context) error {
	due, err := s.repo.FindDue(ctx, truncateToDay(time.Now()))
	if err != nil {
		return err
	}

	for i := range due {
		due[i].Status = models.StatusOverdue
		if err := s.repo.Update(ctx, &due[i]); err != nil {
			return err
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
