// ABOUTME: Day-granularity date helpers for SQLite TEXT columns.
// ABOUTME: Dates are ISO-8601 day strings, timestamps are RFC3339.
package models

import (
	"fmt"
	"time"
)

// DayFormat is the storage layout for date-only fields.
const DayFormat = "2006-01-02"

// Day truncates t to its calendar day string in local time.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// Today returns the current calendar day string.
func Today() string {
	return Day(time.Now())
}

// ParseDay parses an ISO-8601 day string.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the whole calendar days from day string a to b.
// Positive when b is after a, zero when equal.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// AddDays shifts a day string by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return Day(t.AddDate(0, 0, n)), nil
}
