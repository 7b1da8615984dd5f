package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/core/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLister struct{}

func (failingLister) List(context.Context) ([]database.Tag, error) {
	return nil, errors.New("boom")
}

func serve(lister TagLister) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/tags"), NewHandler(lister))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tags", nil))
	return w
}

func TestListTags(t *testing.T) {
	db := database.NewTestDB(t, &database.Tag{})
	tags := repository.NewTagRepository(db)
	_, err := tags.Ensure(context.Background(), "Western", "Action")
	require.NoError(t, err)

	w := serve(tags)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tags []database.Tag `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tags, 2)
	assert.Equal(t, "Action", body.Tags[0].Name)
}

func TestListTagsError(t *testing.T) {
	w := serve(failingLister{})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
