package mapping

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the calendar form dates take in the UI
const DateLayout = "2006-01-02"

// OptionalText trims a text input. Blank text becomes nil so the column is
// stored as NULL.
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Text dereferences an optional column, yielding "" for NULL
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Int copies an optional integer so callers never share storage
func Int(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

// EncodeTags stores tags as a JSON array, dropping blanks. A nil list stores [].
func EncodeTags(tags []string) datatypes.JSON {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	data, err := json.Marshal(cleaned)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// DecodeTags reads a JSON tag array. Anything unreadable decodes to an empty list.
func DecodeTags(raw datatypes.JSON) []string {
	tags := []string{}
	if len(raw) == 0 {
		return tags
	}
	if err := json.Unmarshal(raw, &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

// FormatDate renders a timestamp as YYYY-MM-DD in UTC
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// FormatDatePtr renders an optional timestamp
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// ParseDate reads a YYYY-MM-DD or RFC 3339 date. Blank input is nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
