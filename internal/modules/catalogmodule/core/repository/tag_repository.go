package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jermspeaks/watchlist/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTags is the genre vocabulary every new catalog starts with
var DefaultTags = []string{
	"Action",
	"Adventure",
	"Animation",
	"Biography",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Family",
	"Fantasy",
	"History",
	"Horror",
	"Music",
	"Mystery",
	"Romance",
	"Science Fiction",
	"Thriller",
	"War",
	"Western",
}

// TagRepository handles the shared tag vocabulary
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// List returns every tag ordered by name
func (r *TagRepository) List(ctx context.Context) ([]database.Tag, error) {
	var tags []database.Tag
	if err := r.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// EnsureDefaults inserts the default tags that are missing. Existing names are
// left alone, so it is safe to call on every start.
func (r *TagRepository) EnsureDefaults(ctx context.Context) error {
	_, err := r.Ensure(ctx, DefaultTags...)
	return err
}

// Ensure inserts the named tags that do not exist yet and returns how many
// rows were added
func (r *TagRepository) Ensure(ctx context.Context, names ...string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	tags := make([]database.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, database.Tag{Name: name, DateAdded: now})
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&tags)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to insert tags: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}
