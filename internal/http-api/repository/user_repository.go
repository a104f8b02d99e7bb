package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"bookstore/internal/http-api/models"
)

var (
	// ErrDuplicateUsername and ErrDuplicateEmail translate postgres unique
	// violations so the service layer never inspects driver errors.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already taken")
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(user *models.User) error
	FindByUsername(username string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindAll() ([]models.User, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		// The service pre-checks uniqueness, but two concurrent registrations
		// can still race; the unique index is the arbiter.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ErrDuplicateEmail
			}
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	// check for the error if the user is not found
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		// prevent returning a zero-value user struct => which make GORM think user is found
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
