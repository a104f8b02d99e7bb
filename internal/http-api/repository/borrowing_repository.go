package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"bookstore/internal/http-api/models"
)

var (
	// ErrNoCopies is returned when the conditional copy decrement matches no
	// row, i.e. the last copy was taken by a concurrent borrow. Handlers see
	// the same business error as an up-front availability failure.
	ErrNoCopies = errors.New("no available copies")
	// ErrActiveExists is returned when the partial unique index on
	// (user_id, book_id) rejects a second active borrowing.
	ErrActiveExists = errors.New("active borrowing exists")
	// ErrAlreadyReturned is returned when the conditional status flip matches
	// no row, i.e. the borrowing was already closed by a concurrent return.
	ErrAlreadyReturned = errors.New("borrowing already returned")
)

type BorrowingRepository interface {
	// Borrow decrements the book's available copies and inserts the borrowing
	// in a single transaction. At most one concurrent borrow of the last copy
	// succeeds; the rest get ErrNoCopies. A second active borrowing of the
	// same book by the same user gets ErrActiveExists.
	Borrow(ctx context.Context, b *models.Borrowing) error
	// Return closes the borrowing and increments the book's available copies
	// in a single transaction. At most one concurrent return of the same
	// borrowing succeeds; the rest get ErrAlreadyReturned.
	Return(ctx context.Context, b *models.Borrowing) error
	Update(ctx context.Context, b *models.Borrowing) error
	GetByID(ctx context.Context, id int64) (*models.Borrowing, error)
	GetAll(ctx context.Context) ([]models.Borrowing, error)
	GetByUser(ctx context.Context, userID string) ([]models.Borrowing, error)
	GetByUserAndStatus(ctx context.Context, userID string, status models.BorrowingStatus) ([]models.Borrowing, error)
	GetByStatus(ctx context.Context, status models.BorrowingStatus) ([]models.Borrowing, error)
	ExistsActive(ctx context.Context, userID string, bookID int64) (bool, error)
	FindDue(ctx context.Context, before time.Time) ([]models.Borrowing, error)
}

type borrowingRepository struct {
	db *gorm.DB
}

func NewBorrowingRepository(db *gorm.DB) BorrowingRepository {
	return &borrowingRepository{db: db}
}

func (r *borrowingRepository) Borrow(ctx context.Context, b *models.Borrowing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guarded decrement: the WHERE clause is the arbiter under
		// concurrency, not the caller's earlier availability read.
		res := tx.Model(&models.Book{}).
			Where("id = ? AND available_copies > 0", b.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
		if res.Error != nil {
			return fmt.Errorf("decrement copies: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoCopies
		}

		if err := tx.Create(b).Error; err != nil {
			// rolling back restores the decremented copy
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrActiveExists
			}
			return fmt.Errorf("create borrowing: %w", err)
		}
		return nil
	})
}

func (r *borrowingRepository) Return(ctx context.Context, b *models.Borrowing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guarded status flip: under concurrent returns the WHERE clause lets
		// exactly one caller close the row, and only that caller reaches the
		// copy increment.
		res := tx.Model(&models.Borrowing{}).
			Where("id = ? AND status <> ?", b.ID, models.StatusReturned).
			Updates(map[string]interface{}{
				"status":      models.StatusReturned,
				"return_date": b.ReturnDate,
			})
		if res.Error != nil {
			return fmt.Errorf("close borrowing: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReturned
		}

		res = tx.Model(&models.Book{}).
			Where("id = ?", b.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies + 1"))
		if res.Error != nil {
			return fmt.Errorf("increment copies: %w", res.Error)
		}
		return nil
	})
}

func (r *borrowingRepository) Update(ctx context.Context, b *models.Borrowing) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update borrowing: %w", err)
	}
	return nil
}

func (r *borrowingRepository) GetByID(ctx context.Context, id int64) (*models.Borrowing, error) {
	var b models.Borrowing
	if err := r.db.WithContext(ctx).
		Preload("Book").
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *borrowingRepository) GetAll(ctx context.Context) ([]models.Borrowing, error) {
	var list []models.Borrowing
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list borrowings: %w", err)
	}
	return list, nil
}

func (r *borrowingRepository) GetByUser(ctx context.Context, userID string) ([]models.Borrowing, error) {
	var list []models.Borrowing
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("borrowings by user: %w", err)
	}
	return list, nil
}

func (r *borrowingRepository) GetByUserAndStatus(ctx context.Context, userID string, status models.BorrowingStatus) ([]models.Borrowing, error) {
	var list []models.Borrowing
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ? AND status = ?", userID, status).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("borrowings by user and status: %w", err)
	}
	return list, nil
}

func (r *borrowingRepository) GetByStatus(ctx context.Context, status models.BorrowingStatus) ([]models.Borrowing, error) {
	var list []models.Borrowing
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("borrowings by status: %w", err)
	}
	return list, nil
}

func (r *borrowingRepository) ExistsActive(ctx context.Context, userID string, bookID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Borrowing{}).
		Where("user_id = ? AND book_id = ? AND status IN ?", userID, bookID, models.ActiveStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *borrowingRepository) FindDue(ctx context.Context, before time.Time) ([]models.Borrowing, error) {
	var list []models.Borrowing
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", models.StatusBorrowed, before).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("due borrowings: %w", err)
	}
	return list, nil
}
