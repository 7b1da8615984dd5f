package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/jermspeaks/watchlist/internal/api"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	"github.com/jermspeaks/watchlist/internal/modules/placemodule/models"
	"github.com/jermspeaks/watchlist/internal/utils"
)

// PlaceStore is the persistence contract the handlers need
type PlaceStore = types.Repository[models.Place, models.PlaceInput]

// Handler provides HTTP handlers for place operations
type Handler struct {
	places PlaceStore
}

// NewHandler creates a new API handler
func NewHandler(places PlaceStore) *Handler {
	return &Handler{places: places}
}

// ListPlaces handles GET /api/places
func (h *Handler) ListPlaces(c *gin.Context) {
	var q types.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.RespondWithBindError(c, err)
		return
	}

	page, err := h.places.FindFiltered(c.Request.Context(), q)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"places":     page.Items,
		"total":      page.Total,
		"totalPages": page.TotalPages,
		"page":       page.Page,
		"pageSize":   page.PageSize,
	})
}

// CreatePlace handles POST /api/places
func (h *Handler) CreatePlace(c *gin.Context) {
	var input models.PlaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.RespondWithBindError(c, err)
		return
	}

	place, err := h.places.Create(c.Request.Context(), input)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	logger.Info("place created", "id", place.ID, "name", place.Name)
	c.JSON(http.StatusCreated, gin.H{"id": place.ID})
}

// GetPlace handles GET /api/places/:id
func (h *Handler) GetPlace(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		apierrors.RespondWithNotFound(c, "place", id)
		return
	}

	place, err := h.places.FindByID(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if place == nil {
		apierrors.RespondWithNotFound(c, "place", id)
		return
	}

	c.JSON(http.StatusOK, place)
}

// UpdatePlace handles PATCH /api/places/:id
func (h *Handler) UpdatePlace(c *gin.Context) {
	id := c.Param("id")

	var input models.PlaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.RespondWithBindError(c, err)
		return
	}

	place, err := h.places.Update(c.Request.Context(), id, input)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if place == nil {
		apierrors.RespondWithNotFound(c, "place", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeletePlace handles DELETE /api/places/:id
func (h *Handler) DeletePlace(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		apierrors.RespondWithNotFound(c, "place", id)
		return
	}

	deleted, err := h.places.Delete(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if !deleted {
		apierrors.RespondWithNotFound(c, "place", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
