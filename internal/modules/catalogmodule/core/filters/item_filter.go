// Package filters provides the list filtering logic shared by the catalog repositories
package filters

import (
	"strings"

	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column is a table-qualified column name
type Column struct {
	Table string
	Name  string
}

// Condition is an equality match on a storage value. Empty values are skipped.
type Condition struct {
	Column Column
	Value  string
}

// ItemFilter applies search, equality, sorting and paging clauses to a query
// over the items table joined to one extension table.
type ItemFilter struct {
	// sortColumns maps an allowed UI sortBy value to its column
	sortColumns map[string]Column
	// defaultSort is used when sortBy is empty or not allowed
	defaultSort Column
	// searchColumns are matched case-insensitively by Search
	searchColumns []Column
}

// NewItemFilter creates a filter with a sortBy allow-list and search columns
func NewItemFilter(sortColumns map[string]Column, defaultSort Column, searchColumns ...Column) *ItemFilter {
	return &ItemFilter{
		sortColumns:   sortColumns,
		defaultSort:   defaultSort,
		searchColumns: searchColumns,
	}
}

// ApplyFilter applies the search term and the storage-level equality
// conditions. It never adds ordering or paging, so the result can be counted.
func (f *ItemFilter) ApplyFilter(query *gorm.DB, search string, conditions ...Condition) *gorm.DB {
	query = f.applySearch(query, search)
	return f.applyEquals(query, conditions)
}

// applySearch matches any search column containing the term
func (f *ItemFilter) applySearch(query *gorm.DB, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(f.searchColumns) == 0 {
		return query
	}

	pattern := "%" + EscapeLike(strings.ToLower(search)) + "%"
	clauses := make([]string, 0, len(f.searchColumns))
	args := make([]interface{}, 0, len(f.searchColumns))
	for _, col := range f.searchColumns {
		clauses = append(clauses, "LOWER("+col.Table+"."+col.Name+") LIKE ? ESCAPE '\\'")
		args = append(args, pattern)
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// applyEquals adds one equality condition per non-empty value
func (f *ItemFilter) applyEquals(query *gorm.DB, conditions []Condition) *gorm.DB {
	for _, cond := range conditions {
		if cond.Value == "" {
			continue
		}
		col := clause.Column{Table: cond.Column.Table, Name: cond.Column.Name}
		query = query.Where(clause.Eq{Column: col, Value: cond.Value})
	}
	return query
}

// ApplySorting orders by an allowed column and breaks ties on items.id so
// pages never overlap. Unknown sortBy values fall back to the default column
// descending.
func (f *ItemFilter) ApplySorting(query *gorm.DB, sortBy, direction string) *gorm.DB {
	col, ok := f.sortColumns[sortBy]
	desc := direction != types.SortAsc
	if !ok {
		col = f.defaultSort
		desc = true
	}

	return query.
		Order(clause.OrderByColumn{Column: clause.Column{Table: col.Table, Name: col.Name}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "items", Name: "id"}, Desc: desc})
}

// ApplyPagination applies limit and offset
func (f *ItemFilter) ApplyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize > 0 {
		query = query.Limit(pageSize)
	}
	if page > 1 && pageSize > 0 {
		query = query.Offset((page - 1) * pageSize)
	}
	return query
}

// EscapeLike escapes LIKE wildcards so user input matches literally
func EscapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
