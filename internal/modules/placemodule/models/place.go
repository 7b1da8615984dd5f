// Package models holds the UI-facing shapes of the place module
package models

// Place status values as the UI sends and receives them
const (
	StatusWishlist   = "wishlist"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Coordinates is a point on the map
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Place is the flat UI representation of an item joined with its place row
type Place struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Category     string       `json:"category,omitempty"`
	Address      string       `json:"address,omitempty"`
	City         string       `json:"city,omitempty"`
	State        string       `json:"state,omitempty"`
	Country      string       `json:"country,omitempty"`
	PostalCode   string       `json:"postalCode,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	PhotoURL     string       `json:"photoUrl,omitempty"`
	Website      string       `json:"website,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	PriceRange   string       `json:"priceRange,omitempty"`
	Rating       *int         `json:"rating,omitempty"`
	Tags         []string     `json:"tags"`
	VisitDate    string       `json:"visitDate,omitempty"`
	PlannedDate  string       `json:"plannedDate,omitempty"`
	Status       string       `json:"status,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	LocationType string       `json:"locationType,omitempty"`
	DateAdded    string       `json:"dateAdded"`
	DateUpdated  string       `json:"dateUpdated"`
}

// PlaceInput is a create or partial-update request. A nil field is untouched;
// an empty string clears an optional text field.
type PlaceInput struct {
	Name         *string      `json:"name,omitempty" yaml:"name"`
	Description  *string      `json:"description,omitempty" yaml:"description"`
	Category     *string      `json:"category,omitempty" yaml:"category"`
	Address      *string      `json:"address,omitempty" yaml:"address"`
	City         *string      `json:"city,omitempty" yaml:"city"`
	State        *string      `json:"state,omitempty" yaml:"state"`
	Country      *string      `json:"country,omitempty" yaml:"country"`
	PostalCode   *string      `json:"postalCode,omitempty" yaml:"postalCode"`
	Coordinates  *Coordinates `json:"coordinates,omitempty" yaml:"coordinates"`
	PhotoURL     *string      `json:"photoUrl,omitempty" yaml:"photoUrl"`
	Website      *string      `json:"website,omitempty" yaml:"website"`
	Phone        *string      `json:"phone,omitempty" yaml:"phone"`
	PriceRange   *string      `json:"priceRange,omitempty" yaml:"priceRange"`
	Rating       *int         `json:"rating,omitempty" yaml:"rating"`
	Tags         *[]string    `json:"tags,omitempty" yaml:"tags"`
	VisitDate    *string      `json:"visitDate,omitempty" yaml:"visitDate"`
	PlannedDate  *string      `json:"plannedDate,omitempty" yaml:"plannedDate"`
	Status       *string      `json:"status,omitempty" yaml:"status"`
	Notes        *string      `json:"notes,omitempty" yaml:"notes"`
	LocationType *string      `json:"locationType,omitempty" yaml:"locationType"`
}

// Ptr returns a pointer to v, for building inputs in code
func Ptr[T any](v T) *T {
	return &v
}
