// Package repository persists places across the items and places tables
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/core/filters"
	catalogrepo "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/core/repository"
	catalogerrors "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/errors"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	"github.com/jermspeaks/watchlist/internal/modules/placemodule/core/mapping"
	"github.com/jermspeaks/watchlist/internal/modules/placemodule/models"
	"github.com/jermspeaks/watchlist/internal/utils"
	"gorm.io/gorm"
)

var (
	colTitle     = filters.Column{Table: "items", Name: "title"}
	colDateAdded = filters.Column{Table: "items", Name: "date_added"}
	colRating    = filters.Column{Table: "items", Name: "rating"}
	colStatus    = filters.Column{Table: "items", Name: "status"}
	colCity      = filters.Column{Table: "places", Name: "city"}
	colCategory  = filters.Column{Table: "places", Name: "category"}
)

// PlaceRepository implements the place persistence operations
type PlaceRepository struct {
	items  *catalogrepo.CompositeRepository
	filter *filters.ItemFilter
	paging types.Paging
	now    func() time.Time
}

var _ types.Repository[models.Place, models.PlaceInput] = (*PlaceRepository)(nil)

// Option configures a PlaceRepository
type Option func(*PlaceRepository)

// WithPaging overrides the default and maximum page sizes
func WithPaging(p types.Paging) Option {
	return func(r *PlaceRepository) { r.paging = p }
}

// WithClock overrides the time source used for date_added and date_updated
func WithClock(now func() time.Time) Option {
	return func(r *PlaceRepository) { r.now = now }
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db *gorm.DB, opts ...Option) *PlaceRepository {
	r := &PlaceRepository{
		items: catalogrepo.NewCompositeRepository(db, database.ItemTypePlace, catalogrepo.Extension{
			Association: "Place",
			NewRow:      func() interface{} { return &database.Place{} },
		}),
		filter: filters.NewItemFilter(map[string]filters.Column{
			"name":      colTitle,
			"dateAdded": colDateAdded,
			"rating":    colRating,
		}, colDateAdded, colTitle, colCity),
		paging: types.DefaultPaging,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create inserts the item and place rows in one transaction
func (r *PlaceRepository) Create(ctx context.Context, input models.PlaceInput) (*models.Place, error) {
	m, err := mapping.ToStorage(input, nil, r.now())
	if err != nil {
		return nil, err
	}

	item := m.Item
	item.ID = utils.GenerateUUID()
	item.Place.ID = item.ID

	if err := r.items.Create(ctx, item, item.Place); err != nil {
		return nil, catalogerrors.DatabaseError("create_place", err)
	}
	return mapping.ToUI(item), nil
}

// FindByID returns the place with the given id, or nil when there is none
func (r *PlaceRepository) FindByID(ctx context.Context, id string) (*models.Place, error) {
	item, err := r.items.Load(r.items.Reader(ctx), id)
	if err != nil {
		return nil, catalogerrors.DatabaseError("find_place", err).WithItem(id)
	}
	return mapping.ToUI(item), nil
}

// Update applies a partial update, writing only the touched columns
func (r *PlaceRepository) Update(ctx context.Context, id string, input models.PlaceInput) (*models.Place, error) {
	if err := mapping.CheckUpdate(input); err != nil {
		return nil, err
	}

	now := r.now()
	updated, err := r.items.Update(ctx, id, now, func(existing *database.Item) (*catalogrepo.Changes, error) {
		m, err := mapping.ToStorage(input, existing, now)
		if err != nil {
			return nil, err
		}
		changes := &catalogrepo.Changes{ItemColumns: m.ItemColumns, ExtensionColumns: m.PlaceColumns}
		if existing.Place == nil && len(m.PlaceColumns) > 0 {
			m.Item.Place.ID = id
			changes.ExtensionRow = m.Item.Place
		}
		return changes, nil
	})
	if err != nil {
		return nil, catalogerrors.Wrap(err, catalogerrors.ErrorTypeDatabase, "update_place")
	}
	return mapping.ToUI(updated), nil
}

// Delete removes the place and item rows. It reports whether the item existed.
func (r *PlaceRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.items.Delete(ctx, id)
	if err != nil {
		return false, catalogerrors.DatabaseError("delete_place", err).WithItem(id)
	}
	return deleted, nil
}

// FindFiltered returns one page of places matching q. Search covers the
// name and the city; Category replaces the book source filter.
func (r *PlaceRepository) FindFiltered(ctx context.Context, q types.ListQuery) (*types.Page[models.Place], error) {
	const op = "find_places"

	q = q.Normalize(r.paging)
	status, err := mapping.Statuses.Filter(op, q.Status)
	if err != nil {
		return nil, err
	}
	category, err := mapping.Categories.Filter(op, q.Category)
	if err != nil {
		return nil, err
	}

	var (
		total int64
		rows  []database.Item
	)
	err = r.items.Transaction(ctx, func(tx *gorm.DB) error {
		query := r.items.Scope(tx.Model(&database.Item{}).Joins("LEFT JOIN places ON places.id = items.id"))
		query = r.filter.ApplyFilter(query, q.Search,
			filters.Condition{Column: colStatus, Value: status},
			filters.Condition{Column: colCategory, Value: category},
		).Session(&gorm.Session{})

		var err error
		if total, err = r.items.Count(query); err != nil {
			return err
		}

		page := r.filter.ApplySorting(query.Select("items.*").Preload("Place"), q.SortBy, q.SortDirection)
		page = r.filter.ApplyPagination(page, q.Page, q.PageSize)
		if err := page.Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to list places: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, catalogerrors.DatabaseError(op, err)
	}

	places := make([]models.Place, 0, len(rows))
	for i := range rows {
		places = append(places, *mapping.ToUI(&rows[i]))
	}
	return types.NewPage(places, total, q.Page, q.PageSize), nil
}
