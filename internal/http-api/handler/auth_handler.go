package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(req.Username, req.Password, req.Email, req.FirstName, req.LastName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RegisterResponse{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authentication failed"})
		return
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		// uniform failure body regardless of cause
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authentication failed"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Username: user.Username,
		Role:     user.Role,
		Token:    token,
	})
}
