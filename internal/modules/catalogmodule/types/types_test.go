package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       ListQuery
		page     int
		pageSize int
		dir      string
	}{
		{"defaults", ListQuery{}, 1, 12, SortDesc},
		{"negative page", ListQuery{Page: -3, PageSize: 5}, 1, 5, SortDesc},
		{"clamped size", ListQuery{Page: 2, PageSize: 500, SortDirection: "asc"}, 2, 100, SortAsc},
		{"bad direction", ListQuery{Page: 1, PageSize: 10, SortDirection: "sideways"}, 1, 10, SortDesc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in.Normalize(DefaultPaging)
			assert.Equal(t, tt.page, q.Page)
			assert.Equal(t, tt.pageSize, q.PageSize)
			assert.Equal(t, tt.dir, q.SortDirection)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, ListQuery{Page: 1, PageSize: 12}.Offset())
	assert.Equal(t, 24, ListQuery{Page: 3, PageSize: 12}.Offset())
	assert.Equal(t, 0, ListQuery{}.Offset())
}

func TestNewPage(t *testing.T) {
	p := NewPage([]string{"a", "b"}, 25, 3, 12)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(25), p.Total)

	empty := NewPage[string](nil, 0, 1, 12)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)

	exact := NewPage([]int{1}, 24, 2, 12)
	assert.Equal(t, 2, exact.TotalPages)
}
