package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jermspeaks/watchlist/internal/database"
	"gorm.io/gorm"
)

// Extension describes the table that stores one item type's own columns,
// keyed one-to-one on items.id.
type Extension struct {
	// Association is the Item field the row is preloaded into, e.g. "Book"
	Association string
	// NewRow returns an empty model of the extension table
	NewRow func() interface{}
}

func (e Extension) name() string {
	return strings.ToLower(e.Association)
}

// Changes is what an update writes. ExtensionRow is inserted when the item has
// no extension row yet; otherwise ExtensionColumns are updated in place.
type Changes struct {
	ItemColumns      map[string]interface{}
	ExtensionColumns map[string]interface{}
	ExtensionRow     interface{}
}

// Plan derives the changes of an update from the stored item
type Plan func(existing *database.Item) (*Changes, error)

// CompositeRepository persists one item type across the items table and its
// extension table. Every write runs in a single transaction.
type CompositeRepository struct {
	*ItemRepository
	ext Extension
}

// NewCompositeRepository creates a repository for itemType stored with ext
func NewCompositeRepository(db *gorm.DB, itemType database.ItemType, ext Extension) *CompositeRepository {
	return &CompositeRepository{
		ItemRepository: NewItemRepository(db, itemType),
		ext:            ext,
	}
}

// Load reads one item with its extension row. A missing id yields nil.
func (r *CompositeRepository) Load(tx *gorm.DB, id string) (*database.Item, error) {
	var items []database.Item
	err := r.Scope(tx.Model(&database.Item{})).
		Preload(r.ext.Association).
		Where("items.id = ?", id).
		Limit(1).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.ext.name(), err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// Create inserts item and its extension row. row must already carry item's id.
func (r *CompositeRepository) Create(ctx context.Context, item *database.Item, row interface{}) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := r.InsertItem(tx, item); err != nil {
			return err
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to insert %s: %w", r.ext.name(), err)
		}
		return nil
	})
}

// Update loads id, writes the changes plan returns and reads the result back.
// A missing id yields nil without calling plan. An error from plan rolls back.
func (r *CompositeRepository) Update(ctx context.Context, id string, now time.Time, plan Plan) (*database.Item, error) {
	var updated *database.Item

	err := r.Transaction(ctx, func(tx *gorm.DB) error {
		existing, err := r.Load(tx, id)
		if err != nil || existing == nil {
			return err
		}

		changes, err := plan(existing)
		if err != nil {
			return err
		}

		if _, err := r.UpdateItem(tx, id, changes.ItemColumns, now); err != nil {
			return err
		}

		switch {
		case changes.ExtensionRow != nil:
			err = tx.Create(changes.ExtensionRow).Error
		case len(changes.ExtensionColumns) > 0:
			err = tx.Model(r.ext.NewRow()).Where("id = ?", id).Updates(changes.ExtensionColumns).Error
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", r.ext.name(), err)
		}

		updated, err = r.Load(tx, id)
		return err
	})
	return updated, err
}

// Delete removes the extension and item rows and reports whether the item existed
func (r *CompositeRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool

	err := r.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := r.ItemExists(tx, id)
		if err != nil || !exists {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(r.ext.NewRow()).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", r.ext.name(), err)
		}
		deleted, err = r.DeleteItem(tx, id)
		return err
	})
	return deleted, err
}
