// Package models holds the UI-facing shapes of the book module
package models

// MediaType is the constant mediaType of every book
const MediaType = "book"

// Book status values as the UI sends and receives them
const (
	StatusWishlist  = "wishlist"
	StatusReading   = "reading"
	StatusCompleted = "completed"
)

// Book is the flat UI representation of an item joined with its book row.
// Optional fields are omitted when not stored.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author,omitempty"`
	Description   string   `json:"description,omitempty"`
	AIDescription string   `json:"aiDescription,omitempty"`
	Rating        *int     `json:"rating,omitempty"`
	Ranking       *int     `json:"ranking,omitempty"`
	Tags          []string `json:"tags"`
	Status        string   `json:"status,omitempty"`
	Source        string   `json:"source,omitempty"`
	SourceURL     string   `json:"sourceUrl,omitempty"`
	CoverURL      string   `json:"coverUrl,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	DateAdded     string   `json:"dateAdded"`
	DateUpdated   string   `json:"dateUpdated"`
	MediaType     string   `json:"mediaType"`

	ISBN           string `json:"isbn,omitempty"`
	ISBN13         string `json:"isbn13,omitempty"`
	PageCount      *int   `json:"pageCount,omitempty"`
	Publisher      string `json:"publisher,omitempty"`
	PublishedDate  string `json:"publishedDate,omitempty"`
	Format         string `json:"format,omitempty"`
	Language       string `json:"language,omitempty"`
	CurrentPage    *int   `json:"currentPage,omitempty"`
	Series         string `json:"series,omitempty"`
	SeriesPosition *int   `json:"seriesPosition,omitempty"`
	Edition        string `json:"edition,omitempty"`
	Translator     string `json:"translator,omitempty"`
}

// BookInput is a create or partial-update request. A nil field is untouched;
// an empty string clears an optional text field.
type BookInput struct {
	Title         *string   `json:"title,omitempty" yaml:"title"`
	Author        *string   `json:"author,omitempty" yaml:"author"`
	Description   *string   `json:"description,omitempty" yaml:"description"`
	AIDescription *string   `json:"aiDescription,omitempty" yaml:"aiDescription"`
	Rating        *int      `json:"rating,omitempty" yaml:"rating"`
	Ranking       *int      `json:"ranking,omitempty" yaml:"ranking"`
	Tags          *[]string `json:"tags,omitempty" yaml:"tags"`
	Status        *string   `json:"status,omitempty" yaml:"status"`
	Source        *string   `json:"source,omitempty" yaml:"source"`
	SourceURL     *string   `json:"sourceUrl,omitempty" yaml:"sourceUrl"`
	CoverURL      *string   `json:"coverUrl,omitempty" yaml:"coverUrl"`
	ImageURL      *string   `json:"imageUrl,omitempty" yaml:"imageUrl"`

	ISBN           *string `json:"isbn,omitempty" yaml:"isbn"`
	ISBN13         *string `json:"isbn13,omitempty" yaml:"isbn13"`
	PageCount      *int    `json:"pageCount,omitempty" yaml:"pageCount"`
	Publisher      *string `json:"publisher,omitempty" yaml:"publisher"`
	PublishedDate  *string `json:"publishedDate,omitempty" yaml:"publishedDate"`
	Format         *string `json:"format,omitempty" yaml:"format"`
	Language       *string `json:"language,omitempty" yaml:"language"`
	CurrentPage    *int    `json:"currentPage,omitempty" yaml:"currentPage"`
	Series         *string `json:"series,omitempty" yaml:"series"`
	SeriesPosition *int    `json:"seriesPosition,omitempty" yaml:"seriesPosition"`
	Edition        *string `json:"edition,omitempty" yaml:"edition"`
	Translator     *string `json:"translator,omitempty" yaml:"translator"`
}

// Ptr returns a pointer to v, for building inputs in code
func Ptr[T any](v T) *T {
	return &v
}
