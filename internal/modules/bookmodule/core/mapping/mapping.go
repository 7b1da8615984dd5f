// Package mapping converts between the book UI shape and the items and books rows
package mapping

import (
	"strings"
	"time"

	"github.com/jermspeaks/watchlist/internal/database"
	catalogmapping "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/core/mapping"
	catalogerrors "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/errors"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule/models"
)

var (
	// Statuses maps the book UI status vocabulary
	Statuses = catalogmapping.NewEnum("status", catalogerrors.ErrInvalidStatus, map[string]database.ItemStatus{
		models.StatusWishlist:  database.StatusWishlist,
		models.StatusReading:   database.StatusInProgress,
		models.StatusCompleted: database.StatusCompleted,
	})

	// Sources maps where a book was acquired
	Sources = catalogmapping.NewEnum("source", catalogerrors.ErrInvalidSource, map[string]database.BookSource{
		"amazon":   database.BookSourceAmazon,
		"kindle":   database.BookSourceKindle,
		"kobo":     database.BookSourceKobo,
		"physical": database.BookSourcePhysical,
		"other":    database.BookSourceOther,
	})

	// Formats maps the physical form of a book
	Formats = catalogmapping.NewEnum("format", catalogerrors.ErrInvalidFormat, map[string]database.BookFormat{
		"physical":  database.BookFormatPhysical,
		"ebook":     database.BookFormatEbook,
		"audiobook": database.BookFormatAudiobook,
	})
)

// Mutation is the storage form of an input together with the columns it
// touched, keyed by column name.
type Mutation struct {
	Item        *database.Item
	ItemColumns map[string]interface{}
	BookColumns map[string]interface{}
}

// rules carries the structural checks of an input
type rules struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Source      string `json:"source" validate:"required"`
	Rating      *int   `json:"rating" validate:"omitempty,min=0,max=5"`
	Ranking     *int   `json:"ranking" validate:"omitempty,min=0"`
	SourceURL   string `json:"sourceUrl" validate:"omitempty,url"`
	CoverURL    string `json:"coverUrl" validate:"omitempty,url"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
	PageCount   *int   `json:"pageCount" validate:"omitempty,min=0"`
	CurrentPage *int   `json:"currentPage" validate:"omitempty,min=0"`
	SeriesPos   *int   `json:"seriesPosition" validate:"omitempty,min=0"`
}

func trimmed(s *string) string {
	return strings.TrimSpace(catalogmapping.Text(s))
}

func validateInput(op string, input models.BookInput, creating bool) error {
	r := rules{
		Title:       trimmed(input.Title),
		Author:      trimmed(input.Author),
		Source:      trimmed(input.Source),
		Rating:      input.Rating,
		Ranking:     input.Ranking,
		SourceURL:   trimmed(input.SourceURL),
		CoverURL:    trimmed(input.CoverURL),
		ImageURL:    trimmed(input.ImageURL),
		PageCount:   input.PageCount,
		CurrentPage: input.CurrentPage,
		SeriesPos:   input.SeriesPosition,
	}
	if creating {
		return catalogmapping.Validate(op, r)
	}

	// A partial update only checks the required fields it sets
	var except []string
	if input.Title == nil {
		except = append(except, "Title")
	}
	if input.Author == nil {
		except = append(except, "Author")
	}
	if input.Source == nil {
		except = append(except, "Source")
	}
	return catalogmapping.Validate(op, r, except...)
}

// CheckUpdate runs every check of a partial update that does not need the
// stored row: field rules and the enum vocabularies.
func CheckUpdate(input models.BookInput) error {
	const op = "update_book"
	if err := validateInput(op, input, false); err != nil {
		return err
	}
	if input.Status != nil {
		if _, err := Statuses.Storage(op, *input.Status); err != nil {
			return err
		}
	}
	if input.Source != nil {
		if _, err := Sources.Storage(op, *input.Source); err != nil {
			return err
		}
	}
	if catalogmapping.OptionalText(input.Format) != nil {
		if _, err := Formats.Storage(op, *input.Format); err != nil {
			return err
		}
	}
	return nil
}

// ToStorage maps a UI input onto storage rows. With existing == nil it builds
// a new item and book row; otherwise it overlays the set fields onto a copy
// of existing. now stamps date_updated, and date_added on create.
func ToStorage(input models.BookInput, existing *database.Item, now time.Time) (*Mutation, error) {
	creating := existing == nil
	op := "update_book"
	if creating {
		op = "create_book"
	}

	if err := validateInput(op, input, creating); err != nil {
		return nil, err
	}

	m := &Mutation{
		ItemColumns: make(map[string]interface{}),
		BookColumns: make(map[string]interface{}),
	}

	if creating {
		m.Item = &database.Item{
			Title:     strings.TrimSpace(*input.Title),
			Tags:      catalogmapping.EncodeTags(nil),
			Status:    database.StatusWishlist,
			ItemType:  database.ItemTypeBook,
			DateAdded: now,
		}
		m.Item.Book = &database.Book{}
	} else {
		item := *existing
		if existing.Book != nil {
			book := *existing.Book
			item.Book = &book
		}
		m.Item = &item
	}
	item := m.Item
	item.DateUpdated = now

	setItem := func(column string, value interface{}) { m.ItemColumns[column] = value }
	setBook := func(column string, value interface{}) { m.BookColumns[column] = value }

	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
		setItem("title", item.Title)
	}
	if input.Author != nil {
		item.Author = catalogmapping.OptionalText(input.Author)
		setItem("author", item.Author)
	}
	if input.Description != nil {
		item.Description = catalogmapping.OptionalText(input.Description)
		setItem("description", item.Description)
	}
	if input.AIDescription != nil {
		item.AIDescription = catalogmapping.OptionalText(input.AIDescription)
		setItem("ai_description", item.AIDescription)
	}
	if input.Rating != nil {
		item.Rating = catalogmapping.Int(input.Rating)
		setItem("rating", item.Rating)
	}
	if input.Ranking != nil {
		item.Ranking = catalogmapping.Int(input.Ranking)
		setItem("ranking", item.Ranking)
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
	if input.SourceURL != nil {
		item.SourceURL = catalogmapping.OptionalText(input.SourceURL)
		setItem("source_url", item.SourceURL)
	}

	// coverUrl wins over the legacy imageUrl key
	switch {
	case input.CoverURL != nil:
		item.ImageURL = catalogmapping.OptionalText(input.CoverURL)
		setItem("image_url", item.ImageURL)
	case input.ImageURL != nil:
		item.ImageURL = catalogmapping.OptionalText(input.ImageURL)
		setItem("image_url", item.ImageURL)
	}

	book := item.Book
	if book == nil {
		book = &database.Book{}
	}

	if input.Source != nil {
		source, err := Sources.Storage(op, *input.Source)
		if err != nil {
			return nil, err
		}
		legacy := string(source)
		item.Source = &legacy
		book.Source = &source
		setItem("source", item.Source)
		setBook("source", book.Source)
	}
	if input.Format != nil {
		if catalogmapping.OptionalText(input.Format) == nil {
			book.Format = nil
		} else {
			format, err := Formats.Storage(op, *input.Format)
			if err != nil {
				return nil, err
			}
			book.Format = &format
		}
		setBook("format", book.Format)
	}

	texts := []struct {
		in     *string
		dst    **string
		column string
	}{
		{input.ISBN, &book.ISBN, "isbn"},
		{input.ISBN13, &book.ISBN13, "isbn13"},
		{input.Publisher, &book.Publisher, "publisher"},
		{input.PublishedDate, &book.PublishedDate, "published_date"},
		{input.Language, &book.Language, "language"},
		{input.Series, &book.Series, "series"},
		{input.Edition, &book.Edition, "edition"},
		{input.Translator, &book.Translator, "translator"},
	}
	for _, f := range texts {
		if f.in != nil {
			*f.dst = catalogmapping.OptionalText(f.in)
			setBook(f.column, *f.dst)
		}
	}

	ints := []struct {
		in     *int
		dst    **int
		column string
	}{
		{input.PageCount, &book.PageCount, "page_count"},
		{input.CurrentPage, &book.CurrentPage, "current_page"},
		{input.SeriesPosition, &book.SeriesPosition, "series_position"},
	}
	for _, f := range ints {
		if f.in != nil {
			*f.dst = catalogmapping.Int(f.in)
			setBook(f.column, *f.dst)
		}
	}

	if item.Book != nil || len(m.BookColumns) > 0 {
		item.Book = book
	}
	return m, nil
}

// ToUI renders an item and its book row. A nil book row leaves every
// book-only field absent.
func ToUI(item *database.Item) *models.Book {
	if item == nil {
		return nil
	}

	out := &models.Book{
		ID:            item.ID,
		Title:         item.Title,
		Author:        catalogmapping.Text(item.Author),
		Description:   catalogmapping.Text(item.Description),
		AIDescription: catalogmapping.Text(item.AIDescription),
		Rating:        catalogmapping.Int(item.Rating),
		Ranking:       catalogmapping.Int(item.Ranking),
		Tags:          catalogmapping.DecodeTags(item.Tags),
		Status:        Statuses.UI(item.Status),
		SourceURL:     catalogmapping.Text(item.SourceURL),
		CoverURL:      catalogmapping.Text(item.ImageURL),
		ImageURL:      catalogmapping.Text(item.ImageURL),
		DateAdded:     catalogmapping.FormatDate(item.DateAdded),
		DateUpdated:   catalogmapping.FormatDate(item.DateUpdated),
		MediaType:     models.MediaType,
	}

	if item.Source != nil {
		out.Source = Sources.UI(database.BookSource(*item.Source))
	}

	if book := item.Book; book != nil {
		if book.Source != nil {
			out.Source = Sources.UIPtr(book.Source)
		}
		out.ISBN = catalogmapping.Text(book.ISBN)
		out.ISBN13 = catalogmapping.Text(book.ISBN13)
		out.PageCount = catalogmapping.Int(book.PageCount)
		out.Publisher = catalogmapping.Text(book.Publisher)
		out.PublishedDate = catalogmapping.Text(book.PublishedDate)
		out.Format = Formats.UIPtr(book.Format)
		out.Language = catalogmapping.Text(book.Language)
		out.CurrentPage = catalogmapping.Int(book.CurrentPage)
		out.Series = catalogmapping.Text(book.Series)
		out.SeriesPosition = catalogmapping.Int(book.SeriesPosition)
		out.Edition = catalogmapping.Text(book.Edition)
		out.Translator = catalogmapping.Text(book.Translator)
	}

	return out
}
