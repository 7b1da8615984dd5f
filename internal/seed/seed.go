// Package seed loads the sample catalog shipped with the binary
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jermspeaks/watchlist/internal/logger"
	bookmodels "github.com/jermspeaks/watchlist/internal/modules/bookmodule/models"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	placemodels "github.com/jermspeaks/watchlist/internal/modules/placemodule/models"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var defaultData []byte

// Document is the shape of a seed file
type Document struct {
	Tags   []string                 `yaml:"tags"`
	Books  []bookmodels.BookInput   `yaml:"books"`
	Places []placemodels.PlaceInput `yaml:"places"`
}

// Parse decodes a seed document
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &doc, nil
}

// Default returns the embedded sample catalog
func Default() (*Document, error) {
	return Parse(defaultData)
}

// TagEnsurer adds tag names to the vocabulary
type TagEnsurer interface {
	Ensure(ctx context.Context, names ...string) (int, error)
}

// Result counts the rows a seed run inserted
type Result struct {
	Books  int
	Places int
	Tags   int
}

// Seeder writes a document through the repositories, so every row goes
// through the same mapping and validation as API writes.
type Seeder struct {
	books  types.Repository[bookmodels.Book, bookmodels.BookInput]
	places types.Repository[placemodels.Place, placemodels.PlaceInput]
	tags   TagEnsurer
}

// NewSeeder creates a seeder. A nil places repository skips places.
func NewSeeder(
	books types.Repository[bookmodels.Book, bookmodels.BookInput],
	places types.Repository[placemodels.Place, placemodels.PlaceInput],
	tags TagEnsurer,
) *Seeder {
	return &Seeder{books: books, places: places, tags: tags}
}

// Run inserts the document. Item kinds that already have rows are skipped
// unless force is set.
func (s *Seeder) Run(ctx context.Context, doc *Document, force bool) (Result, error) {
	var res Result
	log := logger.Named("seed")

	if s.tags != nil && len(doc.Tags) > 0 {
		added, err := s.tags.Ensure(ctx, doc.Tags...)
		if err != nil {
			return res, err
		}
		res.Tags = added
	}

	seedBooks, err := shouldSeed(ctx, s.books, force)
	if err != nil {
		return res, err
	}
	if seedBooks {
		for i, in := range doc.Books {
			if _, err := s.books.Create(ctx, in); err != nil {
				return res, fmt.Errorf("failed to seed book %d: %w", i, err)
			}
			res.Books++
		}
	} else {
		log.Info("books already present, skipping")
	}

	if s.places == nil {
		return res, nil
	}
	seedPlaces, err := shouldSeed(ctx, s.places, force)
	if err != nil {
		return res, err
	}
	if seedPlaces {
		for i, in := range doc.Places {
			if _, err := s.places.Create(ctx, in); err != nil {
				return res, fmt.Errorf("failed to seed place %d: %w", i, err)
			}
			res.Places++
		}
	} else {
		log.Info("places already present, skipping")
	}

	log.Info("seed complete", "books", res.Books, "places", res.Places, "tags", res.Tags)
	return res, nil
}

// shouldSeed reports whether repo is empty, or true when forced
func shouldSeed[E, P any](ctx context.Context, repo types.Repository[E, P], force bool) (bool, error) {
	if force {
		return true, nil
	}
	page, err := repo.FindFiltered(ctx, types.ListQuery{PageSize: 1})
	if err != nil {
		return false, err
	}
	return page.Total == 0, nil
}
