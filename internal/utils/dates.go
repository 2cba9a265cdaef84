package utils

import (
	"fmt"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// ParseDateOnly parses a date-only form input (YYYY-MM-DD) and normalizes it
// to midnight UTC. Using the browser's local midnight here would shift the
// stored day for users west of UTC.
func ParseDateOnly(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateOnlyLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ParseOptionalDate parses a date-only input that may be empty. Returns nil
// for empty input.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDateOnly(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// StartOfTodayUTC returns midnight UTC of the current day
func StartOfTodayUTC(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
