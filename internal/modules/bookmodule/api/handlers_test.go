package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule/core/repository"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule/models"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := database.NewTestDB(t, database.CatalogModels()...)
	router := gin.New()
	RegisterRoutes(router.Group("/api/books"), NewHandler(repository.NewBookRepository(db)))
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestBookLifecycle(t *testing.T) {
	router := newRouter(t)

	w := do(router, http.MethodPost, "/api/books", `{"title":"Dune","author":"Frank Herbert","source":"kindle","tags":["sci-fi"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, w, &created)
	require.NotEmpty(t, created.ID)

	w = do(router, http.MethodGet, "/api/books/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var book models.Book
	decode(t, w, &book)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "wishlist", book.Status)
	assert.Equal(t, []string{"sci-fi"}, book.Tags)

	w = do(router, http.MethodPatch, "/api/books/"+created.ID, `{"status":"completed","rating":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(router, http.MethodGet, "/api/books/"+created.ID, "")
	decode(t, w, &book)
	assert.Equal(t, "completed", book.Status)
	assert.Equal(t, 5, *book.Rating)

	w = do(router, http.MethodDelete, "/api/books/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = do(router, http.MethodGet, "/api/books/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(router, http.MethodDelete, "/api/books/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(router, http.MethodPatch, "/api/books/"+created.ID, `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBooks(t *testing.T) {
	router := newRouter(t)
	for _, body := range []string{
		`{"title":"A","author":"x","source":"amazon"}`,
		`{"title":"B","author":"x","source":"kindle"}`,
		`{"title":"C","author":"x","source":"kindle"}`,
	} {
		require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/api/books", body).Code)
	}

	w := do(router, http.MethodGet, "/api/books?source=kindle&sortBy=title&sortDirection=asc&pageSize=1&page=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Books      []models.Book `json:"books"`
		Total      int64         `json:"total"`
		TotalPages int           `json:"totalPages"`
		Page       int           `json:"page"`
		PageSize   int           `json:"pageSize"`
	}
	decode(t, w, &page)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 1, page.PageSize)
	require.Len(t, page.Books, 1)
	assert.Equal(t, "C", page.Books[0].Title)

	w = do(router, http.MethodGet, "/api/books", "")
	decode(t, w, &page)
	assert.Equal(t, 12, page.PageSize)
	assert.Len(t, page.Books, 3)
}

func TestBookErrors(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", http.MethodPost, "/api/books", `{"title":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing author", http.MethodPost, "/api/books", `{"title":"Dune","source":"kindle"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown status", http.MethodPost, "/api/books", `{"title":"Dune","author":"x","source":"kindle","status":"paused"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad filter", http.MethodGet, "/api/books?status=paused", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad page", http.MethodGet, "/api/books?page=abc", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing book", http.MethodGet, "/api/books/nope", "", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			decode(t, w, &body)
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

// unreachableStore fails the test on any call
type unreachableStore struct{ t *testing.T }

func (s unreachableStore) Create(context.Context, models.BookInput) (*models.Book, error) {
	s.t.Fatal("unexpected Create")
	return nil, nil
}

func (s unreachableStore) FindByID(context.Context, string) (*models.Book, error) {
	s.t.Fatal("unexpected FindByID")
	return nil, nil
}

func (s unreachableStore) Update(context.Context, string, models.BookInput) (*models.Book, error) {
	s.t.Fatal("unexpected Update")
	return nil, nil
}

func (s unreachableStore) Delete(context.Context, string) (bool, error) {
	s.t.Fatal("unexpected Delete")
	return false, nil
}

func (s unreachableStore) FindFiltered(context.Context, types.ListQuery) (*types.Page[models.Book], error) {
	s.t.Fatal("unexpected FindFiltered")
	return nil, nil
}

func TestMalformedIDIsNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/books"), NewHandler(unreachableStore{t: t}))

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := do(router, method, "/api/books/not-a-uuid", "")
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
}

func TestPatchMissingBookWithBadStatus(t *testing.T) {
	router := newRouter(t)

	w := do(router, http.MethodPatch, "/api/books/0b4f3c1e-9d8a-4a57-8a39-7d0f9e1f2a11", `{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPatch, "/api/books/0b4f3c1e-9d8a-4a57-8a39-7d0f9e1f2a11", `{"status":"completed"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
