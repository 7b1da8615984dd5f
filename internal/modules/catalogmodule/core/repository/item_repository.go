// Package repository provides the data access layer shared by the catalog modules
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jermspeaks/watchlist/internal/database"
	"gorm.io/gorm"
)

// ItemRepository owns the generic items rows of one item type. Every write
// takes the caller's transaction handle.
type ItemRepository struct {
	db       *gorm.DB
	itemType database.ItemType
}

// NewItemRepository creates a repository scoped to itemType
func NewItemRepository(db *gorm.DB, itemType database.ItemType) *ItemRepository {
	return &ItemRepository{
		db:       db,
		itemType: itemType,
	}
}

// ItemType returns the discriminator this repository is scoped to
func (r *ItemRepository) ItemType() database.ItemType {
	return r.itemType
}

// Transaction runs fn in one transaction bound to ctx. Returning an error or
// panicking rolls back; otherwise the transaction commits.
func (r *ItemRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// Reader returns a context-bound handle for read-only queries
func (r *ItemRepository) Reader(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Scope restricts a query to this repository's item type
func (r *ItemRepository) Scope(query *gorm.DB) *gorm.DB {
	return query.Where("items.item_type = ?", r.itemType)
}

// InsertItem writes a new items row. The item type is forced to the
// repository's type.
func (r *ItemRepository) InsertItem(tx *gorm.DB, item *database.Item) error {
	item.ItemType = r.itemType
	if err := tx.Omit("Book", "Place").Create(item).Error; err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// ItemExists reports whether id names an item of this type
func (r *ItemRepository) ItemExists(tx *gorm.DB, id string) (bool, error) {
	var count int64
	err := r.Scope(tx.Model(&database.Item{})).Where("items.id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check item: %w", err)
	}
	return count > 0, nil
}

// UpdateItem writes the given columns and always refreshes date_updated.
// It reports whether a row matched.
func (r *ItemRepository) UpdateItem(tx *gorm.DB, id string, updates map[string]interface{}, now time.Time) (bool, error) {
	values := make(map[string]interface{}, len(updates)+1)
	for column, value := range updates {
		values[column] = value
	}
	values["date_updated"] = now

	result := r.Scope(tx.Model(&database.Item{})).Where("items.id = ?", id).Updates(values)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update item: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// DeleteItem removes an items row of this type and reports whether one existed
func (r *ItemRepository) DeleteItem(tx *gorm.DB, id string) (bool, error) {
	result := tx.Where("id = ? AND item_type = ?", id, r.itemType).Delete(&database.Item{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete item: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Count returns the number of rows the query matches. The query must not
// carry ordering or paging yet.
func (r *ItemRepository) Count(query *gorm.DB) (int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return total, nil
}
