package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	domerrors "github.com/amirhosseinghanipour/idolbase/internal/domain/errors"
)

// Field length limits shared by entities and request validators.
const (
	MaxNameLength       = 100
	MaxTitleLength      = 200
	MaxColorLength      = 50
	MaxURLLength        = 2048
	MaxMessageLength    = 1000
	msgRequired         = "is required"
	msgMustBePositive   = "must be at least 1"
	msgDuplicateOrdinal = "must be unique"
)

// now is the clock used for CreatedAt/UpdatedAt; tests replace it.
var now = time.Now

// timestamp returns the current time at the precision PostgreSQL stores.
func timestamp() time.Time {
	return now().UTC().Truncate(time.Microsecond)
}

// nextTimestamp returns a timestamp strictly after prev.
func nextTimestamp(prev time.Time) time.Time {
	t := timestamp()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}

// DateOf drops the clock part of t, keeping the calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateOfPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	d := DateOf(*t)
	return &d
}

// requireText trims value and records an error when it is blank or too long.
func requireText(v *domerrors.ValidationError, field, value string, max int) string {
	s := strings.TrimSpace(value)
	if s == "" {
		v.Add(field, msgRequired)
		return s
	}
	if utf8.RuneCountInString(s) > max {
		v.Add(field, maxLengthMessage(max))
	}
	return s
}

// optionalText trims value; a blank value becomes nil.
func optionalText(v *domerrors.ValidationError, field string, value *string, max int) *string {
	if value == nil {
		return nil
	}
	s := strings.TrimSpace(*value)
	if s == "" {
		return nil
	}
	if utf8.RuneCountInString(s) > max {
		v.Add(field, maxLengthMessage(max))
	}
	return &s
}

func maxLengthMessage(max int) string {
	return "must be at most " + strconv.Itoa(max) + " characters"
}

func indexed(field string, i int) string {
	return field + "[" + strconv.Itoa(i) + "]"
}
