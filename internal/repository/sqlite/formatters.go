package sqlite

import (
	"time"
)

// FormatTimeForDB formats a time.Time value as RFC3339Nano in UTC for consistent storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimeForDB(*t)
	return &s
}

// ParseTimeFromDB parses an RFC 3339 timestamp and returns it in local time.
// Any precision is accepted, including the millisecond form of JavaScript's toISOString.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

// ParseTimePtrFromDB parses an optional timestamp. Nil or empty input yields nil.
func ParseTimePtrFromDB(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseTimeFromDB(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
