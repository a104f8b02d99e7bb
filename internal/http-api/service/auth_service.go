package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bookstore/internal/config"
	"bookstore/internal/http-api/middleware/auth"
	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/repository"
)

var (
	ErrUsernameExists     = errors.New("Username already exists")
	ErrEmailExists        = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is the JWT payload attached to every authenticated request.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(username, password, email string, firstName, lastName *string) (*models.User, error)
	Login(username, password string) (token string, user *models.User, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

// Register creates a new account with the USER role. ADMIN is never
// self-assigned through this path.
func (s *authService) Register(username, password, email string, firstName, lastName *string) (*models.User, error) {
	// Check if user exists
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameExists
	}

	// Check if email exists
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailExists
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		// the unique index can still fire under concurrent registration
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameExists
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a signed access token.
func (s *authService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		// User not found: dummy compare to mitigate timing attacks
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
