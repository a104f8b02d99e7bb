package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/service"
)

// PolyBookHandler exposes the type-dispatch views of the catalog: per-variant
// display strings, digital/physical stats and filtering.
type PolyBookHandler struct {
	svc service.BookService
}

func NewPolyBookHandler(svc service.BookService) *PolyBookHandler {
	return &PolyBookHandler{svc: svc}
}

func (h *PolyBookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/books/display", h.Display)
	rg.GET("/books/stats", h.Stats)
	rg.GET("/books/filter", h.Filter)
}

func (h *PolyBookHandler) Display(c *gin.Context) {
	books, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(books))
	for _, b := range books {
		out = append(out, gin.H{
			"id":          b.ID,
			"title":       b.Title,
			"author":      b.Author,
			"type":        b.Type.Label(),
			"isDigital":   b.Type.IsDigital(),
			"displayInfo": b.DisplayInfo(),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *PolyBookHandler) Stats(c *gin.Context) {
	books, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var digital, physical int
	for _, b := range books {
		if b.Type.IsDigital() {
			digital++
		} else {
			physical++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalBooks":    len(books),
		"digitalBooks":  digital,
		"physicalBooks": physical,
	})
}

func (h *PolyBookHandler) Filter(c *gin.Context) {
	digital, err := strconv.ParseBool(c.Query("digital"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "digital must be true or false"})
		return
	}

	books, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filtered := make([]models.Book, 0, len(books))
	for _, b := range books {
		if b.Type.IsDigital() == digital {
			filtered = append(filtered, b)
		}
	}
	c.JSON(http.StatusOK, dto.FromBooks(filtered))
}
