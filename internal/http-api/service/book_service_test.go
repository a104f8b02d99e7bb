package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bookstore/internal/http-api/models"
)

// MockBookRepository mocks the BookRepository interface
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) Search(ctx context.Context, term string) ([]models.Book, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) GetByGenre(ctx context.Context, genre string) ([]models.Book, error) {
	args := m.Called(ctx, genre)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookRepository) GetAvailable(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func TestBookCreate_AllCopiesStartAvailable(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := svc.Create(context.Background(), "Dune", "Frank Herbert", nil, nil, 5, "ebook")

	assert.NoError(t, err)
	assert.Equal(t, 5, book.TotalCopies)
	assert.Equal(t, 5, book.AvailableCopies)
	assert.Equal(t, models.BookTypeEBook, book.Type)
	repo.AssertExpectations(t)
}

func TestBookCreate_RequiresTitleAndAuthor(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), "  ", "Frank Herbert", nil, nil, 5, "PHYSICAL")
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), "Dune", "", nil, nil, 5, "PHYSICAL")
	assert.Error(t, err)
}

func TestBookUpdate_PreservesBorrowedCopies(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	// 5 total, 3 available => 2 borrowed
	existing := &models.Book{
		ID: 1, Title: "Dune", Author: "Frank Herbert",
		TotalCopies: 5, AvailableCopies: 3, Type: models.BookTypePhysical,
	}
	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := svc.Update(context.Background(), 1, "Dune", "Frank Herbert", nil, nil, 10)

	assert.NoError(t, err)
	assert.Equal(t, 10, book.TotalCopies)
	// 2 still borrowed, so 8 available
	assert.Equal(t, 8, book.AvailableCopies)
	assert.Equal(t, models.BookTypePhysical, book.Type)
}

func TestBookUpdate_ClampsAvailabilityAtZero(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	// 5 total, 1 available => 4 borrowed; shrinking to 2 total would go negative
	existing := &models.Book{
		ID: 1, Title: "Dune", Author: "Frank Herbert",
		TotalCopies: 5, AvailableCopies: 1, Type: models.BookTypePhysical,
	}
	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Book")).Return(nil)

	book, err := svc.Update(context.Background(), 1, "Dune", "Frank Herbert", nil, nil, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, book.TotalCopies)
	assert.Equal(t, 0, book.AvailableCopies)
}

func TestBookUpdate_NotFound(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Update(context.Background(), 99, "Dune", "Frank Herbert", nil, nil, 2)

	assert.Equal(t, ErrBookNotFound, err)
}

func TestBookDelete_NotFound(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 99)

	assert.Equal(t, ErrBookNotFound, err)
}

func TestBookSearch_BlankTermReturnsAll(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	all := []models.Book{{ID: 1}, {ID: 2}}
	repo.On("GetAll", mock.Anything).Return(all, nil)

	got, err := svc.Search(context.Background(), "   ")

	assert.NoError(t, err)
	assert.Equal(t, all, got)
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestBookSearch_DelegatesTrimmedTerm(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	repo.On("Search", mock.Anything, "dune").Return([]models.Book{{ID: 1}}, nil)

	got, err := svc.Search(context.Background(), "  dune  ")

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	repo.AssertExpectations(t)
}

func TestIsAvailable(t *testing.T) {
	repo := new(MockBookRepository)
	svc := NewBookService(repo)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&models.Book{ID: 1, AvailableCopies: 2}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(&models.Book{ID: 2, AvailableCopies: 0}, nil)
	repo.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	ok, err := svc.IsAvailable(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, _ = svc.IsAvailable(context.Background(), 2)
	assert.False(t, ok)

	// absent book is simply not available
	ok, err = svc.IsAvailable(context.Background(), 3)
	assert.NoError(t, err)
	assert.False(t, ok)
}
