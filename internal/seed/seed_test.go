package seed

import (
	"context"
	"testing"

	"github.com/jermspeaks/watchlist/internal/database"
	bookrepo "github.com/jermspeaks/watchlist/internal/modules/bookmodule/core/repository"
	catalogrepo "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/core/repository"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	placerepo "github.com/jermspeaks/watchlist/internal/modules/placemodule/core/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocumentParses(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	assert.Len(t, doc.Books, 5)
	assert.Len(t, doc.Places, 3)
	assert.Contains(t, doc.Tags, "Travel")

	dune := doc.Books[1]
	require.NotNil(t, dune.Title)
	assert.Equal(t, "Dune", *dune.Title)
	assert.Equal(t, "9780441172719", *dune.ISBN)
	assert.Equal(t, 412, *dune.PageCount)
	assert.Equal(t, []string{"Fiction", "Science Fiction"}, *dune.Tags)

	require.NotNil(t, doc.Places[0].Coordinates)
	assert.InDelta(t, 37.7614, doc.Places[0].Coordinates.Latitude, 1e-9)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("books: [\n"))
	require.Error(t, err)
}

func TestRunWritesThroughRepositories(t *testing.T) {
	db := database.NewTestDB(t, database.CatalogModels()...)
	ctx := context.Background()

	books := bookrepo.NewBookRepository(db)
	places := placerepo.NewPlaceRepository(db)
	tags := catalogrepo.NewTagRepository(db)
	seeder := NewSeeder(books, places, tags)

	// Tags that already exist are not counted
	_, err := tags.Ensure(ctx, "Travel")
	require.NoError(t, err)

	doc, err := Default()
	require.NoError(t, err)

	res, err := seeder.Run(ctx, doc, false)
	require.NoError(t, err)
	assert.Equal(t, Result{Books: 5, Places: 3, Tags: 4}, res)

	page, err := books.FindFiltered(ctx, types.ListQuery{Source: "physical"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page2, err := places.FindFiltered(ctx, types.ListQuery{Category: "museum"})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "domestic", page2.Items[0].LocationType)

	list, err := tags.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(list))
	for _, tag := range list {
		names = append(names, tag.Name)
	}
	assert.Contains(t, names, "Self-Help")

	// A second run leaves populated kinds alone
	res, err = seeder.Run(ctx, doc, false)
	require.NoError(t, err)
	assert.Zero(t, res.Books)
	assert.Zero(t, res.Places)
	assert.Zero(t, res.Tags)

	res, err = seeder.Run(ctx, doc, true)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Books)
	page, err = books.FindFiltered(ctx, types.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), page.Total)
}

func TestRunStopsOnInvalidEntry(t *testing.T) {
	db := database.NewTestDB(t, database.CatalogModels()...)

	doc, err := Parse([]byte(`
books:
  - title: Good
    author: A
    source: kindle
  - title: Bad
    author: B
    source: library
`))
	require.NoError(t, err)

	res, err := NewSeeder(bookrepo.NewBookRepository(db), nil, nil).Run(context.Background(), doc, false)
	require.Error(t, err)
	assert.Equal(t, 1, res.Books)
}
