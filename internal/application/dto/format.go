package dto

import (
	"time"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// DateLayout is the wire format of date-only fields.
const DateLayout = "2006-01-02"

// FormatDate renders a date-only value.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatDatePtr renders an optional date-only value.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// FormatTimestamp renders a timestamp as RFC3339 in UTC.
func FormatTimestamp(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

// ParseDate parses a date-only value; field names the input in the returned ValidationError.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, domerrors.Invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// ParseDatePtr parses an optional date-only value. Nil and empty strings yield nil.
func ParseDatePtr(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseTimestamp parses an RFC3339 timestamp.
func ParseTimestamp(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, domerrors.Invalid(field, "must be an RFC3339 timestamp")
	}
	return t.UTC(), nil
}
