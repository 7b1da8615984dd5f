package mapping

import (
	"errors"
	"testing"
	"time"

	"github.com/jermspeaks/watchlist/internal/database"
	catalogerrors "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/errors"
	"github.com/jermspeaks/watchlist/internal/modules/placemodule/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	edited  = time.Date(2024, 6, 12, 19, 45, 0, 0, time.UTC)
)

func fullInput() models.PlaceInput {
	return models.PlaceInput{
		Name:         models.Ptr("Tartine"),
		Description:  models.Ptr("Bakery"),
		Category:     models.Ptr("cafe"),
		Address:      models.Ptr("600 Guerrero St"),
		City:         models.Ptr("San Francisco"),
		State:        models.Ptr("CA"),
		Country:      models.Ptr("USA"),
		PostalCode:   models.Ptr("94110"),
		Coordinates:  &models.Coordinates{Latitude: 37.7614, Longitude: -122.4241},
		PhotoURL:     models.Ptr("https://example.com/tartine.jpg"),
		Website:      models.Ptr("https://tartinebakery.com"),
		Phone:        models.Ptr("+1 415 487 2600"),
		PriceRange:   models.Ptr("moderate"),
		Rating:       models.Ptr(4),
		Tags:         &[]string{"bread", "coffee"},
		VisitDate:    models.Ptr("2024-05-20"),
		PlannedDate:  models.Ptr("2024-07-01"),
		Status:       models.Ptr("completed"),
		Notes:        models.Ptr("Get there early"),
		LocationType: models.Ptr("domestic"),
	}
}

func TestRoundTrip(t *testing.T) {
	m, err := ToStorage(fullInput(), nil, created)
	require.NoError(t, err)
	m.Item.ID = "id-1"

	place := ToUI(m.Item)
	assert.Equal(t, "Tartine", place.Name)
	assert.Equal(t, "cafe", place.Category)
	assert.Equal(t, "San Francisco", place.City)
	assert.Equal(t, "USA", place.Country)
	assert.Equal(t, "moderate", place.PriceRange)
	assert.Equal(t, "domestic", place.LocationType)
	assert.Equal(t, "completed", place.Status)
	assert.Equal(t, "2024-05-20", place.VisitDate)
	assert.Equal(t, "2024-07-01", place.PlannedDate)
	assert.Equal(t, "https://example.com/tartine.jpg", place.PhotoURL)
	assert.Equal(t, []string{"bread", "coffee"}, place.Tags)
	require.NotNil(t, place.Coordinates)
	assert.InDelta(t, 37.7614, place.Coordinates.Latitude, 1e-9)
	assert.InDelta(t, -122.4241, place.Coordinates.Longitude, 1e-9)
	assert.Equal(t, "2024-06-10", place.DateAdded)

	assert.Equal(t, database.ItemTypePlace, m.Item.ItemType)
	assert.Equal(t, database.StatusCompleted, m.Item.Status)
	assert.Equal(t, "Tartine", m.Item.Title)
	assert.Equal(t, "https://example.com/tartine.jpg", *m.Item.ImageURL)
	assert.Nil(t, m.Item.Source)
	assert.Equal(t, database.PlaceCategoryCafe, m.Item.Place.Category)
	assert.Equal(t, database.PriceRangeModerate, *m.Item.Place.PriceRange)
}

func TestEveryEnumValueRoundTrips(t *testing.T) {
	for _, category := range Categories.Values() {
		for _, status := range Statuses.Values() {
			in := models.PlaceInput{
				Name:     models.Ptr("x"),
				Category: models.Ptr(category),
				City:     models.Ptr("Paris"),
				Country:  models.Ptr("France"),
				Status:   models.Ptr(status),
			}
			m, err := ToStorage(in, nil, created)
			require.NoError(t, err)
			out := ToUI(m.Item)
			assert.Equal(t, category, out.Category)
			assert.Equal(t, status, out.Status)
		}
	}
	for _, price := range PriceRanges.Values() {
		code, err := PriceRanges.Storage("test", price)
		require.NoError(t, err)
		assert.Equal(t, price, PriceRanges.UI(code))
	}
	for _, lt := range LocationTypes.Values() {
		code, err := LocationTypes.Storage("test", lt)
		require.NoError(t, err)
		assert.Equal(t, lt, LocationTypes.UI(code))
	}
}

func TestCreateDefaults(t *testing.T) {
	in := models.PlaceInput{
		Name:     models.Ptr("  Louvre "),
		Category: models.Ptr("Museum"),
		City:     models.Ptr("Paris"),
		Country:  models.Ptr("France"),
	}
	m, err := ToStorage(in, nil, created)
	require.NoError(t, err)

	assert.Equal(t, "Louvre", m.Item.Title)
	assert.Equal(t, database.StatusWishlist, m.Item.Status)
	assert.Equal(t, database.LocationTypeLocal, m.Item.Place.LocationType)
	assert.JSONEq(t, `[]`, string(m.Item.Tags))
	assert.Nil(t, m.Item.Place.Coordinates)
	assert.Equal(t, created, m.Item.DateAdded)
	assert.Equal(t, created, m.Item.DateUpdated)

	out := ToUI(m.Item)
	assert.Equal(t, "wishlist", out.Status)
	assert.Equal(t, "local", out.LocationType)
	assert.Empty(t, out.PriceRange)
	assert.Nil(t, out.Coordinates)
}

func TestCreateRequiresFields(t *testing.T) {
	for _, field := range []string{"name", "category", "city", "country"} {
		t.Run(field, func(t *testing.T) {
			in := fullInput()
			switch field {
			case "name":
				in.Name = models.Ptr("   ")
			case "category":
				in.Category = nil
			case "city":
				in.City = nil
			case "country":
				in.Country = models.Ptr("")
			}
			_, err := ToStorage(in, nil, created)
			require.Error(t, err)
			assert.True(t, errors.Is(err, catalogerrors.ErrMissingField))

			var catErr *catalogerrors.CatalogError
			require.True(t, errors.As(err, &catErr))
			assert.Equal(t, field, catErr.Field)
		})
	}
}

func TestRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.PlaceInput)
		sentinel error
		field    string
	}{
		{"category", func(in *models.PlaceInput) { in.Category = models.Ptr("nightclub") }, catalogerrors.ErrInvalidCategory, "category"},
		{"status", func(in *models.PlaceInput) { in.Status = models.Ptr("visited") }, catalogerrors.ErrInvalidStatus, "status"},
		{"price", func(in *models.PlaceInput) { in.PriceRange = models.Ptr("$$") }, catalogerrors.ErrInvalidPriceRange, "priceRange"},
		{"location", func(in *models.PlaceInput) { in.LocationType = models.Ptr("orbital") }, catalogerrors.ErrInvalidLocationType, "locationType"},
		{"rating", func(in *models.PlaceInput) { in.Rating = models.Ptr(9) }, catalogerrors.ErrInvalidInput, "rating"},
		{"latitude", func(in *models.PlaceInput) { in.Coordinates = &models.Coordinates{Latitude: 91} }, catalogerrors.ErrInvalidInput, "latitude"},
		{"longitude", func(in *models.PlaceInput) { in.Coordinates = &models.Coordinates{Longitude: -181} }, catalogerrors.ErrInvalidInput, "longitude"},
		{"website", func(in *models.PlaceInput) { in.Website = models.Ptr("not a url") }, catalogerrors.ErrInvalidInput, "website"},
		{"visit date", func(in *models.PlaceInput) { in.VisitDate = models.Ptr("20/05/2024") }, catalogerrors.ErrInvalidInput, "visitDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fullInput()
			tt.mutate(&in)
			_, err := ToStorage(in, nil, created)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.True(t, catalogerrors.IsValidationError(err))

			var catErr *catalogerrors.CatalogError
			require.True(t, errors.As(err, &catErr))
			assert.Equal(t, tt.field, catErr.Field)
		})
	}
}

func TestPartialUpdate(t *testing.T) {
	base, err := ToStorage(fullInput(), nil, created)
	require.NoError(t, err)
	base.Item.ID = "id-1"
	base.Item.Place.ID = "id-1"

	m, err := ToStorage(models.PlaceInput{
		Status:     models.Ptr("wishlist"),
		PriceRange: models.Ptr(""),
		Notes:      models.Ptr(""),
	}, base.Item, edited)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"status": database.StatusWishlist}, m.ItemColumns)
	assert.Len(t, m.PlaceColumns, 2)
	assert.Nil(t, m.PlaceColumns["price_range"])
	assert.Nil(t, m.PlaceColumns["notes"])

	out := ToUI(m.Item)
	assert.Equal(t, "wishlist", out.Status)
	assert.Empty(t, out.PriceRange)
	assert.Empty(t, out.Notes)
	assert.Equal(t, "Tartine", out.Name)
	assert.Equal(t, "2024-06-10", out.DateAdded)
	assert.Equal(t, "2024-06-12", out.DateUpdated)

	// The original is untouched
	assert.Equal(t, database.StatusCompleted, base.Item.Status)
	assert.NotNil(t, base.Item.Place.PriceRange)
}

func TestUpdateClearsDate(t *testing.T) {
	base, err := ToStorage(fullInput(), nil, created)
	require.NoError(t, err)

	m, err := ToStorage(models.PlaceInput{VisitDate: models.Ptr("")}, base.Item, edited)
	require.NoError(t, err)
	assert.Contains(t, m.PlaceColumns, "visit_date")
	assert.Nil(t, m.Item.Place.VisitDate)
	assert.Empty(t, ToUI(m.Item).VisitDate)
}

func TestUpdateRejectsBlankRequired(t *testing.T) {
	base, err := ToStorage(fullInput(), nil, created)
	require.NoError(t, err)

	_, err = ToStorage(models.PlaceInput{City: models.Ptr(" ")}, base.Item, edited)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalogerrors.ErrMissingField))
}

func TestLegacyItemWithoutPlaceRow(t *testing.T) {
	legacy := &database.Item{
		ID:        "id-legacy",
		Title:     "Somewhere",
		Status:    database.StatusWishlist,
		ItemType:  database.ItemTypePlace,
		DateAdded: created,
	}

	out := ToUI(legacy)
	assert.Equal(t, "Somewhere", out.Name)
	assert.Empty(t, out.Category)
	assert.Empty(t, out.City)
	assert.Equal(t, []string{}, out.Tags)

	// Touching a place column without the non-null ones is rejected
	_, err := ToStorage(models.PlaceInput{Notes: models.Ptr("hi")}, legacy, edited)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalogerrors.ErrMissingField))

	m, err := ToStorage(models.PlaceInput{
		Category: models.Ptr("park"),
		City:     models.Ptr("Kyoto"),
		Country:  models.Ptr("Japan"),
	}, legacy, edited)
	require.NoError(t, err)
	require.NotNil(t, m.Item.Place)
	assert.Equal(t, database.LocationTypeLocal, m.Item.Place.LocationType)
	assert.Nil(t, legacy.Place)
}

func TestUnknownStorageCodesRenderAbsent(t *testing.T) {
	price := database.PriceRange("CHEAP")
	item := &database.Item{
		Title:  "Odd",
		Status: database.ItemStatus("ARCHIVED"),
		Place: &database.Place{
			Category:     database.PlaceCategory("SPA"),
			PriceRange:   &price,
			LocationType: database.LocationType("SPACE"),
		},
	}
	out := ToUI(item)
	assert.Empty(t, out.Status)
	assert.Empty(t, out.Category)
	assert.Empty(t, out.PriceRange)
	assert.Empty(t, out.LocationType)
}

func TestCheckUpdate(t *testing.T) {
	require.NoError(t, CheckUpdate(models.PlaceInput{}))
	require.NoError(t, CheckUpdate(models.PlaceInput{PriceRange: models.Ptr(""), VisitDate: models.Ptr("")}))

	err := CheckUpdate(models.PlaceInput{Category: models.Ptr("spa")})
	assert.True(t, errors.Is(err, catalogerrors.ErrInvalidCategory))
	err = CheckUpdate(models.PlaceInput{LocationType: models.Ptr("orbital")})
	assert.True(t, errors.Is(err, catalogerrors.ErrInvalidLocationType))
	err = CheckUpdate(models.PlaceInput{PlannedDate: models.Ptr("soon")})
	assert.True(t, catalogerrors.IsValidationError(err))
	err = CheckUpdate(models.PlaceInput{Country: models.Ptr("")})
	assert.True(t, catalogerrors.IsValidationError(err))
}
