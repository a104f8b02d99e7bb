package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"bookstore/internal/http-api/models"
)

type BookRepository interface {
	GetAll(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]models.Book, error)
	GetByGenre(ctx context.Context, genre string) ([]models.Book, error)
	GetAvailable(ctx context.Context) ([]models.Book, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return list, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM will populate b.ID
	return nil
}

func (r *bookRepository) Update(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	// Borrowings cascade via the foreign key constraint.
	if err := r.db.WithContext(ctx).Delete(&models.Book{}, id).Error; err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// Search performs a case-insensitive substring match over title, author and
// genre. An empty term is handled by the service (returns all books).
func (r *bookRepository) Search(ctx context.Context, term string) ([]models.Book, error) {
	var list []models.Book
	p := "%" + strings.TrimSpace(term) + "%"
	// COALESCE avoids NULL genre breaking the ILIKE
	if err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR author ILIKE ? OR COALESCE(genre,'') ILIKE ?", p, p, p).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return list, nil
}

func (r *bookRepository) GetByGenre(ctx context.Context, genre string) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).
		Where("LOWER(genre) = LOWER(?)", genre).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("books by genre: %w", err)
	}
	return list, nil
}

func (r *bookRepository) GetAvailable(ctx context.Context) ([]models.Book, error) {
	var list []models.Book
	if err := r.db.WithContext(ctx).
		Where("available_copies > 0").
		Order("id").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("available books: %w", err)
	}
	return list, nil
}
