package mapping

import (
	"errors"
	"testing"
	"time"

	catalogerrors "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type color string

var colors = NewEnum("color", catalogerrors.ErrInvalidInput, map[string]color{
	"red":   "RED",
	"green": "GREEN",
})

func TestEnumRoundTrip(t *testing.T) {
	for _, ui := range colors.Values() {
		code, err := colors.Storage("test", ui)
		require.NoError(t, err)
		assert.Equal(t, ui, colors.UI(code))
	}

	code, err := colors.Storage("test", "  Green ")
	require.NoError(t, err)
	assert.Equal(t, color("GREEN"), code)
}

func TestEnumRejectsUnknown(t *testing.T) {
	_, err := colors.Storage("test", "blue")
	require.Error(t, err)
	assert.True(t, catalogerrors.IsValidationError(err))
	assert.True(t, errors.Is(err, catalogerrors.ErrInvalidInput))

	assert.Equal(t, "", colors.UI("PURPLE"))
	assert.Equal(t, "", colors.UIPtr(nil))
}

func TestEnumFilter(t *testing.T) {
	for _, v := range []string{"", "all", "ALL", "  "} {
		code, err := colors.Filter("test", v)
		require.NoError(t, err)
		assert.Empty(t, code)
	}

	code, err := colors.Filter("test", "red")
	require.NoError(t, err)
	assert.Equal(t, "RED", code)

	_, err = colors.Filter("test", "blue")
	assert.True(t, catalogerrors.IsValidationError(err))
}

func TestNewEnumPanicsOnDuplicateCodes(t *testing.T) {
	assert.Panics(t, func() {
		NewEnum("dup", catalogerrors.ErrInvalidInput, map[string]color{"a": "X", "b": "X"})
	})
}

func TestOptionalText(t *testing.T) {
	assert.Nil(t, OptionalText(nil))
	blank := "   "
	assert.Nil(t, OptionalText(&blank))
	padded := "  Dune "
	assert.Equal(t, "Dune", *OptionalText(&padded))
	assert.Equal(t, "", Text(nil))
}

func TestTags(t *testing.T) {
	assert.JSONEq(t, `[]`, string(EncodeTags(nil)))
	assert.JSONEq(t, `["sci-fi","classic"]`, string(EncodeTags([]string{"sci-fi", " ", "classic "})))

	assert.Equal(t, []string{"a", "b"}, DecodeTags(datatypes.JSON(`["a","b"]`)))
	assert.Equal(t, []string{}, DecodeTags(nil))
	assert.Equal(t, []string{}, DecodeTags(datatypes.JSON(`not json`)))
	assert.Equal(t, []string{}, DecodeTags(datatypes.JSON(`null`)))
}

func TestDates(t *testing.T) {
	ts := time.Date(2024, 1, 31, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2024-02-01", FormatDate(ts))
	assert.Equal(t, "", FormatDate(time.Time{}))
	assert.Equal(t, "", FormatDatePtr(nil))

	d, err := ParseDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", FormatDatePtr(d))

	d, err = ParseDate("2024-06-15T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", FormatDatePtr(d))

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("15/06/2024")
	require.Error(t, err)
}

type rules struct {
	Title  string `json:"title" validate:"required"`
	Rating *int   `json:"rating" validate:"omitempty,min=0,max=5"`
	URL    string `json:"coverUrl" validate:"omitempty,url"`
}

func TestValidate(t *testing.T) {
	five, six := 5, 6

	require.NoError(t, Validate("test", rules{Title: "x", Rating: &five, URL: "https://example.com/a.jpg"}))

	err := Validate("test", rules{})
	var cErr *catalogerrors.CatalogError
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, "title", cErr.Field)
	assert.True(t, errors.Is(err, catalogerrors.ErrMissingField))

	err = Validate("test", rules{Title: "x", Rating: &six})
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, "rating", cErr.Field)
	assert.Equal(t, "max=5", cErr.Details["rule"])

	err = Validate("test", rules{Title: "x", URL: "not a url"})
	require.True(t, errors.As(err, &cErr))
	assert.Equal(t, "coverUrl", cErr.Field)

	require.NoError(t, Validate("test", rules{}, "Title"))
}
