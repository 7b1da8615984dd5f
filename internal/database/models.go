package database

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ItemType is the discriminator stored in items.item_type
type ItemType string

const (
	ItemTypeBook  ItemType = "book"
	ItemTypePlace ItemType = "place"
)

func (it ItemType) Value() (driver.Value, error) {
	return string(it), nil
}

func (it *ItemType) Scan(value interface{}) error {
	if value == nil {
		*it = ""
		return nil
	}
	switch s := value.(type) {
	case string:
		*it = ItemType(s)
	case []byte:
		*it = ItemType(s)
	default:
		return fmt.Errorf("cannot scan %T into ItemType", value)
	}
	return nil
}

// ItemStatus is the storage form of an item's progress
type ItemStatus string

const (
	StatusWishlist   ItemStatus = "WISHLIST"
	StatusInProgress ItemStatus = "IN_PROGRESS"
	StatusCompleted  ItemStatus = "COMPLETED"
)

// Book storage enums
type BookSource string

const (
	BookSourceAmazon   BookSource = "AMAZON"
	BookSourceKindle   BookSource = "KINDLE"
	BookSourceKobo     BookSource = "KOBO"
	BookSourcePhysical BookSource = "PHYSICAL"
	BookSourceOther    BookSource = "OTHER"
)

type BookFormat string

const (
	BookFormatPhysical  BookFormat = "PHYSICAL"
	BookFormatEbook     BookFormat = "EBOOK"
	BookFormatAudiobook BookFormat = "AUDIOBOOK"
)

// Place storage enums
type PlaceCategory string

const (
	PlaceCategoryRestaurant PlaceCategory = "RESTAURANT"
	PlaceCategoryCafe       PlaceCategory = "CAFE"
	PlaceCategoryBar        PlaceCategory = "BAR"
	PlaceCategoryAttraction PlaceCategory = "ATTRACTION"
	PlaceCategoryMuseum     PlaceCategory = "MUSEUM"
	PlaceCategoryPark       PlaceCategory = "PARK"
	PlaceCategoryHotel      PlaceCategory = "HOTEL"
	PlaceCategoryOther      PlaceCategory = "OTHER"
)

type PriceRange string

const (
	PriceRangeInexpensive   PriceRange = "INEXPENSIVE"
	PriceRangeModerate      PriceRange = "MODERATE"
	PriceRangeExpensive     PriceRange = "EXPENSIVE"
	PriceRangeVeryExpensive PriceRange = "VERY_EXPENSIVE"
)

type LocationType string

const (
	LocationTypeLocal         LocationType = "LOCAL"
	LocationTypeDomestic      LocationType = "DOMESTIC"
	LocationTypeInternational LocationType = "INTERNATIONAL"
)

// =============================================================================
// GENERIC ITEMS TABLE
// =============================================================================

// Item is the row shared by every tracked media type. The type-specific
// columns live in an extension table keyed by the same id.
type Item struct {
	ID            string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title         string         `gorm:"type:text;not null" json:"title"`
	Description   *string        `gorm:"type:text" json:"description,omitempty"`
	AIDescription *string        `gorm:"column:ai_description;type:text" json:"ai_description,omitempty"`
	Rating        *int           `json:"rating,omitempty"`
	Ranking       *int           `json:"ranking,omitempty"`
	Tags          datatypes.JSON `gorm:"not null" json:"tags"`
	Author        *string        `gorm:"type:text" json:"author,omitempty"`
	Status        ItemStatus     `gorm:"type:varchar(20);not null;default:WISHLIST;check:status IN ('WISHLIST','IN_PROGRESS','COMPLETED')" json:"status"`
	Source        *string        `gorm:"type:text" json:"source,omitempty"`
	SourceURL     *string        `gorm:"column:source_url;type:text" json:"source_url,omitempty"`
	ImageURL      *string        `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	ItemType      ItemType       `gorm:"type:varchar(20);not null;index" json:"item_type"`
	DateAdded     time.Time      `gorm:"not null" json:"date_added"`
	DateUpdated   time.Time      `gorm:"not null" json:"date_updated"`

	// Extension rows, declared here so migrations create the cascading
	// foreign keys on books.id and places.id.
	Book  *Book  `gorm:"foreignKey:ID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Place *Place `gorm:"foreignKey:ID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Item) TableName() string { return "items" }

// =============================================================================
// EXTENSION TABLES
// =============================================================================

// Book holds the book-only columns of an item
type Book struct {
	ID             string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	ISBN           *string     `gorm:"column:isbn;type:text" json:"isbn,omitempty"`
	ISBN13         *string     `gorm:"column:isbn13;type:text" json:"isbn13,omitempty"`
	PageCount      *int        `json:"page_count,omitempty"`
	Publisher      *string     `gorm:"type:text" json:"publisher,omitempty"`
	PublishedDate  *string     `gorm:"type:text" json:"published_date,omitempty"`
	Format         *BookFormat `gorm:"type:varchar(20);check:format IN ('PHYSICAL','EBOOK','AUDIOBOOK')" json:"format,omitempty"`
	Source         *BookSource `gorm:"type:varchar(20);check:source IN ('AMAZON','KINDLE','KOBO','PHYSICAL','OTHER')" json:"source,omitempty"`
	Language       *string     `gorm:"type:text" json:"language,omitempty"`
	CurrentPage    *int        `json:"current_page,omitempty"`
	Series         *string     `gorm:"type:text" json:"series,omitempty"`
	SeriesPosition *int        `json:"series_position,omitempty"`
	Edition        *string     `gorm:"type:text" json:"edition,omitempty"`
	Translator     *string     `gorm:"type:text" json:"translator,omitempty"`
}

func (Book) TableName() string { return "books" }

// Coordinates is the JSON document stored in places.coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place holds the place-only columns of an item
type Place struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Category     PlaceCategory   `gorm:"type:varchar(20);not null;check:category IN ('RESTAURANT','CAFE','BAR','ATTRACTION','MUSEUM','PARK','HOTEL','OTHER')" json:"category"`
	Address      *string         `gorm:"type:text" json:"address,omitempty"`
	City         string          `gorm:"type:text;not null" json:"city"`
	State        *string         `gorm:"type:text" json:"state,omitempty"`
	Country      string          `gorm:"type:text;not null" json:"country"`
	PostalCode   *string         `gorm:"type:text" json:"postal_code,omitempty"`
	Coordinates  *datatypes.JSON `json:"coordinates,omitempty"`
	Website      *string         `gorm:"type:text" json:"website,omitempty"`
	Phone        *string         `gorm:"type:text" json:"phone,omitempty"`
	PriceRange   *PriceRange     `gorm:"type:varchar(20);check:price_range IN ('INEXPENSIVE','MODERATE','EXPENSIVE','VERY_EXPENSIVE')" json:"price_range,omitempty"`
	VisitDate    *time.Time      `json:"visit_date,omitempty"`
	PlannedDate  *time.Time      `json:"planned_date,omitempty"`
	LocationType LocationType    `gorm:"type:varchar(20);not null;default:LOCAL;check:location_type IN ('LOCAL','DOMESTIC','INTERNATIONAL')" json:"location_type"`
	Notes        *string         `gorm:"type:text" json:"notes,omitempty"`
}

func (Place) TableName() string { return "places" }

// Tag is an entry in the shared tag vocabulary
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	DateAdded   time.Time `gorm:"not null" json:"date_added"`
}

func (Tag) TableName() string { return "tags" }
