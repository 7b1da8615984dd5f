package bookmodule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule/models"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleLoadsAfterCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := database.NewTestDB(t)

	books := NewModule(db, &types.Paging{DefaultPageSize: 5, MaxPageSize: 10})
	registry := modulemanager.NewRegistry()
	registry.Register(books)
	registry.Register(catalogmodule.NewModule(db))
	require.NoError(t, registry.LoadAll(db))

	assert.True(t, db.Migrator().HasTable("books"))
	assert.True(t, books.IsInitialized())
	require.NoError(t, books.HealthCheck(context.Background()))

	_, err := books.Repository().Create(context.Background(), models.BookInput{
		Title:  models.Ptr("Dune"),
		Author: models.Ptr("Frank Herbert"),
		Source: models.Ptr("kobo"),
	})
	require.NoError(t, err)

	page, err := books.Repository().FindFiltered(context.Background(), types.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 5, page.PageSize)

	router := gin.New()
	registry.RegisterRoutes(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tags", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
