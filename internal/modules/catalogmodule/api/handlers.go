package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/jermspeaks/watchlist/internal/api"
	"github.com/jermspeaks/watchlist/internal/database"
)

// TagLister is the read side of the tag repository
type TagLister interface {
	List(ctx context.Context) ([]database.Tag, error)
}

// Handler provides HTTP handlers for the shared catalog vocabulary
type Handler struct {
	tags TagLister
}

// NewHandler creates a new API handler
func NewHandler(tags TagLister) *Handler {
	return &Handler{tags: tags}
}

// ListTags handles GET /api/tags
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if tags == nil {
		tags = []database.Tag{}
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
