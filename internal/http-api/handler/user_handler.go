package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore/internal/http-api/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterAdminRoutes mounts the admin-only user listing.
func (h *UserHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.List)
}

// RegisterProfileRoutes mounts the authenticated profile lookup.
func (h *UserHandler) RegisterProfileRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Profile)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Profile(c *gin.Context) {
	username, exists := c.Get("username")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.svc.Profile(username.(string))
	if err != nil {
		// valid token without a stored user is an invariant violation
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}
