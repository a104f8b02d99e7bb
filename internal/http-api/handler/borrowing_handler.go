package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/middleware"
	"bookstore/internal/http-api/service"
)

type BorrowingHandler struct {
	svc service.BorrowingService
}

func NewBorrowingHandler(svc service.BorrowingService) *BorrowingHandler {
	return &BorrowingHandler{svc: svc}
}

func (h *BorrowingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/borrow/:bookId", h.Borrow)
	rg.POST("/return/:id", h.Return)
	rg.GET("/my-history", h.History)
	rg.GET("/my-active", h.Active)
	rg.GET("/all", middleware.RequireAdmin(), h.All)
	rg.GET("/overdue", middleware.RequireAdmin(), h.Overdue)
	rg.POST("/update-overdue", middleware.RequireAdmin(), h.UpdateOverdue)
	rg.GET("/:id", h.Get)
}

// currentUserID reads the identity set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return userID.(string), true
}

func (h *BorrowingHandler) Borrow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookID, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	borrowing, err := h.svc.Borrow(ctx, userID, bookID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBorrowing(*borrowing))
}

func (h *BorrowingHandler) Return(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	borrowingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid borrowing id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	borrowing, err := h.svc.Return(ctx, userID, borrowingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Book returned successfully",
		"borrowing": dto.FromBorrowing(*borrowing),
	})
}

func (h *BorrowingHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	borrowings, err := h.svc.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBorrowings(borrowings))
}

func (h *BorrowingHandler) Active(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	borrowings, err := h.svc.Active(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBorrowings(borrowings))
}

func (h *BorrowingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid borrowing id"})
		return
	}

	borrowing, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBorrowing(*borrowing))
}

func (h *BorrowingHandler) All(c *gin.Context) {
	borrowings, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBorrowings(borrowings))
}

func (h *BorrowingHandler) Overdue(c *gin.Context) {
	borrowings, err := h.svc.Overdue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.FromBorrowings(borrowings))
}

func (h *BorrowingHandler) UpdateOverdue(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.SweepOverdue(ctx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update overdue borrowings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Overdue borrowings updated successfully"})
}
