// ABOUTME: Tests for day-string helpers.
// ABOUTME: Gap arithmetic drives streak continuity, so edges matter.
package models

import "testing"

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2026-03-01", "2026-03-01", 0},
		{"2026-03-01", "2026-03-02", 1},
		{"2026-03-01", "2026-03-04", 3},
		{"2026-03-02", "2026-03-01", -1},
		{"2026-02-28", "2026-03-01", 1}, // not a leap year
		{"2024-02-28", "2024-03-01", 2}, // leap year
		{"2025-12-31", "2026-01-01", 1},
	}
	for _, c := range cases {
		got, err := DaysBetween(c.a, c.b)
		if err != nil {
			t.Errorf("DaysBetween(%s, %s) error: %v", c.a, c.b, err)
			continue
		}
		if got != c.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestDaysBetweenRejectsBadInput(t *testing.T) {
	if _, err := DaysBetween("2026-03-01", "yesterday"); err == nil {
		t.Error("expected error for unparseable day")
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-03-01", 1)
	if err != nil || got != "2026-03-02" {
		t.Errorf("AddDays(+1) = %s (%v), want 2026-03-02", got, err)
	}
	got, err = AddDays("2026-03-01", -1)
	if err != nil || got != "2026-02-28" {
		t.Errorf("AddDays(-1) = %s (%v), want 2026-02-28", got, err)
	}
	got, err = AddDays("2025-12-31", 1)
	if err != nil || got != "2026-01-01" {
		t.Errorf("AddDays over year end = %s (%v), want 2026-01-01", got, err)
	}
}

func TestParseDayRejectsTimestamps(t *testing.T) {
	if _, err := ParseDay("2026-03-01T10:00:00Z"); err == nil {
		t.Error("expected error for a timestamp where a day is required")
	}
}
