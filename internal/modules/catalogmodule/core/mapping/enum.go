// Package mapping provides the building blocks the media type modules use to
// translate between UI values and storage rows.
package mapping

import (
	"sort"
	"strings"

	catalogerrors "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/errors"
)

// Enum is a total, invertible lookup table between lower-case UI values and
// upper-case storage codes.
type Enum[S ~string] struct {
	field     string
	sentinel  error
	toStorage map[string]S
	toUI      map[S]string
}

// NewEnum builds a lookup table. Each UI value must map to a distinct code.
func NewEnum[S ~string](field string, sentinel error, pairs map[string]S) *Enum[S] {
	e := &Enum[S]{
		field:     field,
		sentinel:  sentinel,
		toStorage: make(map[string]S, len(pairs)),
		toUI:      make(map[S]string, len(pairs)),
	}
	for ui, code := range pairs {
		if _, dup := e.toUI[code]; dup {
			panic("mapping: duplicate storage code " + string(code) + " for " + field)
		}
		e.toStorage[ui] = code
		e.toUI[code] = ui
	}
	return e
}

// Storage translates a UI value. Surrounding space and case are ignored;
// anything outside the table is a validation error.
func (e *Enum[S]) Storage(op, value string) (S, error) {
	code, ok := e.toStorage[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", catalogerrors.InvalidValue(op, e.field, e.sentinel, value, e.Values())
	}
	return code, nil
}

// UI translates a storage code. Unknown codes yield "".
func (e *Enum[S]) UI(code S) string {
	return e.toUI[code]
}

// UIPtr translates an optional storage code
func (e *Enum[S]) UIPtr(code *S) string {
	if code == nil {
		return ""
	}
	return e.toUI[*code]
}

// Filter translates a list filter value. Empty and "all" disable the filter.
func (e *Enum[S]) Filter(op, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return "", nil
	}
	code, err := e.Storage(op, value)
	if err != nil {
		return "", err
	}
	return string(code), nil
}

// Values returns the accepted UI values in sorted order
func (e *Enum[S]) Values() []string {
	values := make([]string, 0, len(e.toStorage))
	for ui := range e.toStorage {
		values = append(values, ui)
	}
	sort.Strings(values)
	return values
}
