// Package repository persists books across the items and books tables
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule/core/mapping"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule/models"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/core/filters"
	catalogrepo "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/core/repository"
	catalogerrors "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/errors"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	"github.com/jermspeaks/watchlist/internal/utils"
	"gorm.io/gorm"
)

var (
	colTitle      = filters.Column{Table: "items", Name: "title"}
	colDateAdded  = filters.Column{Table: "items", Name: "date_added"}
	colRating     = filters.Column{Table: "items", Name: "rating"}
	colStatus     = filters.Column{Table: "items", Name: "status"}
	colBookSource = filters.Column{Table: "books", Name: "source"}
)

// BookRepository implements the book persistence operations
type BookRepository struct {
	items  *catalogrepo.CompositeRepository
	filter *filters.ItemFilter
	paging types.Paging
	now    func() time.Time
}

var _ types.Repository[models.Book, models.BookInput] = (*BookRepository)(nil)

// Option configures a BookRepository
type Option func(*BookRepository)

// WithPaging overrides the default and maximum page sizes
func WithPaging(p types.Paging) Option {
	return func(r *BookRepository) { r.paging = p }
}

// WithClock overrides the time source used for date_added and date_updated
func WithClock(now func() time.Time) Option {
	return func(r *BookRepository) { r.now = now }
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB, opts ...Option) *BookRepository {
	r := &BookRepository{
		items: catalogrepo.NewCompositeRepository(db, database.ItemTypeBook, catalogrepo.Extension{
			Association: "Book",
			NewRow:      func() interface{} { return &database.Book{} },
		}),
		filter: filters.NewItemFilter(map[string]filters.Column{
			"title":     colTitle,
			"dateAdded": colDateAdded,
			"rating":    colRating,
		}, colDateAdded, colTitle),
		paging: types.DefaultPaging,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create inserts the item and book rows in one transaction
func (r *BookRepository) Create(ctx context.Context, input models.BookInput) (*models.Book, error) {
	m, err := mapping.ToStorage(input, nil, r.now())
	if err != nil {
		return nil, err
	}

	item := m.Item
	item.ID = utils.GenerateUUID()
	item.Book.ID = item.ID

	if err := r.items.Create(ctx, item, item.Book); err != nil {
		return nil, catalogerrors.DatabaseError("create_book", err)
	}
	return mapping.ToUI(item), nil
}

// FindByID returns the book with the given id, or nil when there is none
func (r *BookRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	item, err := r.items.Load(r.items.Reader(ctx), id)
	if err != nil {
		return nil, catalogerrors.DatabaseError("find_book", err).WithItem(id)
	}
	return mapping.ToUI(item), nil
}

// Update applies a partial update. Input is checked before the database is
// touched. Only the touched columns are written and the book row is created
// when a legacy item has none. A missing id yields nil without writing anything.
func (r *BookRepository) Update(ctx context.Context, id string, input models.BookInput) (*models.Book, error) {
	if err := mapping.CheckUpdate(input); err != nil {
		return nil, err
	}

	now := r.now()
	updated, err := r.items.Update(ctx, id, now, func(existing *database.Item) (*catalogrepo.Changes, error) {
		m, err := mapping.ToStorage(input, existing, now)
		if err != nil {
			return nil, err
		}
		changes := &catalogrepo.Changes{ItemColumns: m.ItemColumns, ExtensionColumns: m.BookColumns}
		if existing.Book == nil && len(m.BookColumns) > 0 {
			m.Item.Book.ID = id
			changes.ExtensionRow = m.Item.Book
		}
		return changes, nil
	})
	if err != nil {
		return nil, catalogerrors.Wrap(err, catalogerrors.ErrorTypeDatabase, "update_book")
	}
	return mapping.ToUI(updated), nil
}

// Delete removes the book and item rows. It reports whether the item existed.
func (r *BookRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.items.Delete(ctx, id)
	if err != nil {
		return false, catalogerrors.DatabaseError("delete_book", err).WithItem(id)
	}
	return deleted, nil
}

// FindFiltered returns one page of books matching q. The total is counted
// before paging is applied.
func (r *BookRepository) FindFiltered(ctx context.Context, q types.ListQuery) (*types.Page[models.Book], error) {
	const op = "find_books"

	q = q.Normalize(r.paging)
	status, err := mapping.Statuses.Filter(op, q.Status)
	if err != nil {
		return nil, err
	}
	source, err := mapping.Sources.Filter(op, q.Source)
	if err != nil {
		return nil, err
	}

	var (
		total int64
		rows  []database.Item
	)
	err = r.items.Transaction(ctx, func(tx *gorm.DB) error {
		query := r.items.Scope(tx.Model(&database.Item{}).Joins("LEFT JOIN books ON books.id = items.id"))
		query = r.filter.ApplyFilter(query, q.Search,
			filters.Condition{Column: colStatus, Value: status},
			filters.Condition{Column: colBookSource, Value: source},
		).Session(&gorm.Session{})

		var err error
		if total, err = r.items.Count(query); err != nil {
			return err
		}

		page := r.filter.ApplySorting(query.Select("items.*").Preload("Book"), q.SortBy, q.SortDirection)
		page = r.filter.ApplyPagination(page, q.Page, q.PageSize)
		if err := page.Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to list books: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, catalogerrors.DatabaseError(op, err)
	}

	books := make([]models.Book, 0, len(rows))
	for i := range rows {
		books = append(books, *mapping.ToUI(&rows[i]))
	}
	return types.NewPage(books, total, q.Page, q.PageSize), nil
}
