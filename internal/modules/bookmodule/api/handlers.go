package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/jermspeaks/watchlist/internal/api"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule/models"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	"github.com/jermspeaks/watchlist/internal/utils"
)

// BookStore is the persistence contract the handlers need
type BookStore = types.Repository[models.Book, models.BookInput]

// Handler provides HTTP handlers for book operations
type Handler struct {
	books BookStore
}

// NewHandler creates a new API handler
func NewHandler(books BookStore) *Handler {
	return &Handler{books: books}
}

// ListBooks handles GET /api/books
func (h *Handler) ListBooks(c *gin.Context) {
	var q types.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.RespondWithBindError(c, err)
		return
	}

	page, err := h.books.FindFiltered(c.Request.Context(), q)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books":      page.Items,
		"total":      page.Total,
		"totalPages": page.TotalPages,
		"page":       page.Page,
		"pageSize":   page.PageSize,
	})
}

// CreateBook handles POST /api/books
func (h *Handler) CreateBook(c *gin.Context) {
	var input models.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.RespondWithBindError(c, err)
		return
	}

	book, err := h.books.Create(c.Request.Context(), input)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	logger.Info("book created", "id", book.ID, "title", book.Title)
	c.JSON(http.StatusCreated, gin.H{"id": book.ID})
}

// GetBook handles GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		apierrors.RespondWithNotFound(c, "book", id)
		return
	}

	book, err := h.books.FindByID(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if book == nil {
		apierrors.RespondWithNotFound(c, "book", id)
		return
	}

	c.JSON(http.StatusOK, book)
}

// UpdateBook handles PATCH /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	id := c.Param("id")

	var input models.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.RespondWithBindError(c, err)
		return
	}

	book, err := h.books.Update(c.Request.Context(), id, input)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if book == nil {
		apierrors.RespondWithNotFound(c, "book", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteBook handles DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		apierrors.RespondWithNotFound(c, "book", id)
		return
	}

	deleted, err := h.books.Delete(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if !deleted {
		apierrors.RespondWithNotFound(c, "book", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
