package service

import (
	"errors"

	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/repository"
)

// ErrUserNotFound covers the should-not-happen case of an authenticated
// username with no matching row.
var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	FindByUsername(username string) (*models.User, error)
	GetAll() ([]models.User, error)
	// Profile resolves the stored user for an authenticated username.
	Profile(username string) (*models.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) FindByUsername(username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetAll() ([]models.User, error) {
	return s.repo.FindAll()
}

func (s *userService) Profile(username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		// the token was valid, so the row should exist
		return nil, ErrUserNotFound
	}
	return user, nil
}
