// Package mapping converts between the place UI shape and the items and places rows
package mapping

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jermspeaks/watchlist/internal/database"
	catalogmapping "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/core/mapping"
	catalogerrors "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/errors"
	"github.com/jermspeaks/watchlist/internal/modules/placemodule/models"
	"gorm.io/datatypes"
)

var (
	// Statuses maps the place UI status vocabulary
	Statuses = catalogmapping.NewEnum("status", catalogerrors.ErrInvalidStatus, map[string]database.ItemStatus{
		models.StatusWishlist:   database.StatusWishlist,
		models.StatusInProgress: database.StatusInProgress,
		models.StatusCompleted:  database.StatusCompleted,
	})

	// Categories maps what kind of place it is
	Categories = catalogmapping.NewEnum("category", catalogerrors.ErrInvalidCategory, map[string]database.PlaceCategory{
		"restaurant": database.PlaceCategoryRestaurant,
		"cafe":       database.PlaceCategoryCafe,
		"bar":        database.PlaceCategoryBar,
		"attraction": database.PlaceCategoryAttraction,
		"museum":     database.PlaceCategoryMuseum,
		"park":       database.PlaceCategoryPark,
		"hotel":      database.PlaceCategoryHotel,
		"other":      database.PlaceCategoryOther,
	})

	// PriceRanges maps how expensive a place is
	PriceRanges = catalogmapping.NewEnum("priceRange", catalogerrors.ErrInvalidPriceRange, map[string]database.PriceRange{
		"inexpensive":    database.PriceRangeInexpensive,
		"moderate":       database.PriceRangeModerate,
		"expensive":      database.PriceRangeExpensive,
		"very_expensive": database.PriceRangeVeryExpensive,
	})

	// LocationTypes maps how far away a place is
	LocationTypes = catalogmapping.NewEnum("locationType", catalogerrors.ErrInvalidLocationType, map[string]database.LocationType{
		"local":         database.LocationTypeLocal,
		"domestic":      database.LocationTypeDomestic,
		"international": database.LocationTypeInternational,
	})
)

// Mutation is the storage form of an input together with the columns it
// touched, keyed by column name.
type Mutation struct {
	Item         *database.Item
	ItemColumns  map[string]interface{}
	PlaceColumns map[string]interface{}
}

type rules struct {
	Name      string   `json:"name" validate:"required"`
	Category  string   `json:"category" validate:"required"`
	City      string   `json:"city" validate:"required"`
	Country   string   `json:"country" validate:"required"`
	Rating    *int     `json:"rating" validate:"omitempty,min=0,max=5"`
	PhotoURL  string   `json:"photoUrl" validate:"omitempty,url"`
	Website   string   `json:"website" validate:"omitempty,url"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

var requiredFields = []string{"Name", "Category", "City", "Country"}

func trimmed(s *string) string {
	return strings.TrimSpace(catalogmapping.Text(s))
}

func validateInput(op string, input models.PlaceInput, required map[string]bool) error {
	r := rules{
		Name:     trimmed(input.Name),
		Category: trimmed(input.Category),
		City:     trimmed(input.City),
		Country:  trimmed(input.Country),
		Rating:   input.Rating,
		PhotoURL: trimmed(input.PhotoURL),
		Website:  trimmed(input.Website),
	}
	if input.Coordinates != nil {
		r.Latitude = &input.Coordinates.Latitude
		r.Longitude = &input.Coordinates.Longitude
	}

	var except []string
	for _, field := range requiredFields {
		if !required[field] {
			except = append(except, field)
		}
	}
	return catalogmapping.Validate(op, r, except...)
}

// requiredSet decides which required fields are checked. A create checks
// all of them; an update only checks the ones it sets.
func requiredSet(input models.PlaceInput, creating bool) map[string]bool {
	if creating {
		return map[string]bool{"Name": true, "Category": true, "City": true, "Country": true}
	}
	return map[string]bool{
		"Name":     input.Name != nil,
		"Category": input.Category != nil,
		"City":     input.City != nil,
		"Country":  input.Country != nil,
	}
}

func parseDate(op, field string, in *string) (*time.Time, error) {
	t, err := catalogmapping.ParseDate(*in)
	if err != nil {
		return nil, catalogerrors.ValidationError(op, fmt.Errorf("%w: expected YYYY-MM-DD", catalogerrors.ErrInvalidInput)).
			WithField(field)
	}
	return t, nil
}

// CheckUpdate runs every check of a partial update that does not need the
// stored row: field rules, the enum vocabularies and the date formats.
func CheckUpdate(input models.PlaceInput) error {
	const op = "update_place"
	if err := validateInput(op, input, requiredSet(input, false)); err != nil {
		return err
	}
	if input.Status != nil {
		if _, err := Statuses.Storage(op, *input.Status); err != nil {
			return err
		}
	}
	if input.Category != nil {
		if _, err := Categories.Storage(op, *input.Category); err != nil {
			return err
		}
	}
	if catalogmapping.OptionalText(input.PriceRange) != nil {
		if _, err := PriceRanges.Storage(op, *input.PriceRange); err != nil {
			return err
		}
	}
	if input.LocationType != nil {
		if _, err := LocationTypes.Storage(op, *input.LocationType); err != nil {
			return err
		}
	}
	if input.VisitDate != nil {
		if _, err := parseDate(op, "visitDate", input.VisitDate); err != nil {
			return err
		}
	}
	if input.PlannedDate != nil {
		if _, err := parseDate(op, "plannedDate", input.PlannedDate); err != nil {
			return err
		}
	}
	return nil
}

// ToStorage maps a UI input onto storage rows. With existing == nil it builds
// a new item and place row; otherwise it overlays the set fields onto a copy
// of existing.
func ToStorage(input models.PlaceInput, existing *database.Item, now time.Time) (*Mutation, error) {
	creating := existing == nil
	op := "update_place"
	if creating {
		op = "create_place"
	}

	if err := validateInput(op, input, requiredSet(input, creating)); err != nil {
		return nil, err
	}

	m := &Mutation{
		ItemColumns:  make(map[string]interface{}),
		PlaceColumns: make(map[string]interface{}),
	}

	if creating {
		m.Item = &database.Item{
			Title:     strings.TrimSpace(*input.Name),
			Tags:      catalogmapping.EncodeTags(nil),
			Status:    database.StatusWishlist,
			ItemType:  database.ItemTypePlace,
			DateAdded: now,
			Place:     &database.Place{LocationType: database.LocationTypeLocal},
		}
	} else {
		item := *existing
		if existing.Place != nil {
			place := *existing.Place
			item.Place = &place
		}
		m.Item = &item
	}
	item := m.Item
	item.DateUpdated = now

	setItem := func(column string, value interface{}) { m.ItemColumns[column] = value }
	setPlace := func(column string, value interface{}) { m.PlaceColumns[column] = value }

	if input.Name != nil {
		item.Title = strings.TrimSpace(*input.Name)
		setItem("title", item.Title)
	}
	if input.Description != nil {
		item.Description = catalogmapping.OptionalText(input.Description)
		setItem("description", item.Description)
	}
	if input.Rating != nil {
		item.Rating = catalogmapping.Int(input.Rating)
		setItem("rating", item.Rating)
	}
	if input.Tags != nil {
		item.Tags = catalogmapping.EncodeTags(*input.Tags)
		setItem("tags", item.Tags)
	}
	if input.Status != nil {
		status, err := Statuses.Storage(op, *input.Status)
		if err != nil {
			return nil, err
		}
		item.Status = status
		setItem("status", item.Status)
	}
	if input.PhotoURL != nil {
		item.ImageURL = catalogmapping.OptionalText(input.PhotoURL)
		setItem("image_url", item.ImageURL)
	}

	newRow := item.Place == nil
	place := item.Place
	if newRow {
		place = &database.Place{LocationType: database.LocationTypeLocal}
	}

	if input.Category != nil {
		category, err := Categories.Storage(op, *input.Category)
		if err != nil {
			return nil, err
		}
		place.Category = category
		setPlace("category", place.Category)
	}
	if input.City != nil {
		place.City = strings.TrimSpace(*input.City)
		setPlace("city", place.City)
	}
	if input.Country != nil {
		place.Country = strings.TrimSpace(*input.Country)
		setPlace("country", place.Country)
	}
	if input.PriceRange != nil {
		if catalogmapping.OptionalText(input.PriceRange) == nil {
			place.PriceRange = nil
		} else {
			price, err := PriceRanges.Storage(op, *input.PriceRange)
			if err != nil {
				return nil, err
			}
			place.PriceRange = &price
		}
		setPlace("price_range", place.PriceRange)
	}
	if input.LocationType != nil {
		locationType, err := LocationTypes.Storage(op, *input.LocationType)
		if err != nil {
			return nil, err
		}
		place.LocationType = locationType
		setPlace("location_type", place.LocationType)
	}
	if input.Coordinates != nil {
		data, err := json.Marshal(database.Coordinates{
			Latitude:  input.Coordinates.Latitude,
			Longitude: input.Coordinates.Longitude,
		})
		if err != nil {
			return nil, catalogerrors.InternalError(op, err)
		}
		coords := datatypes.JSON(data)
		place.Coordinates = &coords
		setPlace("coordinates", place.Coordinates)
	}
	if input.VisitDate != nil {
		visit, err := parseDate(op, "visitDate", input.VisitDate)
		if err != nil {
			return nil, err
		}
		place.VisitDate = visit
		setPlace("visit_date", place.VisitDate)
	}
	if input.PlannedDate != nil {
		planned, err := parseDate(op, "plannedDate", input.PlannedDate)
		if err != nil {
			return nil, err
		}
		place.PlannedDate = planned
		setPlace("planned_date", place.PlannedDate)
	}

	texts := []struct {
		in     *string
		dst    **string
		column string
	}{
		{input.Address, &place.Address, "address"},
		{input.State, &place.State, "state"},
		{input.PostalCode, &place.PostalCode, "postal_code"},
		{input.Website, &place.Website, "website"},
		{input.Phone, &place.Phone, "phone"},
		{input.Notes, &place.Notes, "notes"},
	}
	for _, f := range texts {
		if f.in != nil {
			*f.dst = catalogmapping.OptionalText(f.in)
			setPlace(f.column, *f.dst)
		}
	}

	if newRow && len(m.PlaceColumns) > 0 {
		// A fresh place row needs its non-null columns
		required := []struct{ field, value string }{
			{"category", string(place.Category)},
			{"city", place.City},
			{"country", place.Country},
		}
		for _, r := range required {
			if r.value == "" {
				return nil, catalogerrors.MissingField(op, r.field)
			}
		}
		item.Place = place
	}
	return m, nil
}

// ToUI renders an item and its place row. A nil place row leaves every
// place-only field absent.
func ToUI(item *database.Item) *models.Place {
	if item == nil {
		return nil
	}

	out := &models.Place{
		ID:          item.ID,
		Name:        item.Title,
		Description: catalogmapping.Text(item.Description),
		PhotoURL:    catalogmapping.Text(item.ImageURL),
		Rating:      catalogmapping.Int(item.Rating),
		Tags:        catalogmapping.DecodeTags(item.Tags),
		Status:      Statuses.UI(item.Status),
		DateAdded:   catalogmapping.FormatDate(item.DateAdded),
		DateUpdated: catalogmapping.FormatDate(item.DateUpdated),
	}

	place := item.Place
	if place == nil {
		return out
	}

	out.Category = Categories.UI(place.Category)
	out.Address = catalogmapping.Text(place.Address)
	out.City = place.City
	out.State = catalogmapping.Text(place.State)
	out.Country = place.Country
	out.PostalCode = catalogmapping.Text(place.PostalCode)
	out.Website = catalogmapping.Text(place.Website)
	out.Phone = catalogmapping.Text(place.Phone)
	out.PriceRange = PriceRanges.UIPtr(place.PriceRange)
	out.VisitDate = catalogmapping.FormatDatePtr(place.VisitDate)
	out.PlannedDate = catalogmapping.FormatDatePtr(place.PlannedDate)
	out.Notes = catalogmapping.Text(place.Notes)
	out.LocationType = LocationTypes.UI(place.LocationType)

	if place.Coordinates != nil {
		var coords database.Coordinates
		if err := json.Unmarshal(*place.Coordinates, &coords); err == nil {
			out.Coordinates = &models.Coordinates{Latitude: coords.Latitude, Longitude: coords.Longitude}
		}
	}
	return out
}
