package domain

import (
	"fmt"
	"time"
)

// lastDayOfMonth is the fixed day table used to complete partial release
// dates. It deliberately ignores leap years (February is always 28): the
// already-persisted corpus depends on these exact values, so compatibility
// wins over calendar correctness.
var lastDayOfMonth = map[time.Month]int{
	time.January:   31,
	time.February:  28,
	time.March:     31,
	time.April:     30,
	time.May:       31,
	time.June:      30,
	time.July:      31,
	time.August:    31,
	time.September: 30,
	time.October:   31,
	time.November:  30,
	time.December:  31,
}

// NormalizeReleaseDate completes a partial release date to a full calendar
// date. Accepted shapes: "2006-01-02" (passes through), "2006-01" (day
// filled to the last day of the month), "2006" (December 31). Anything else
// wraps ErrValidation.
func NormalizeReleaseDate(raw string) (time.Time, error) {
	switch len(raw) {
	case len("2006-01-02"):
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("release date %q: %w", raw, ErrValidation)
		}
		return t, nil
	case len("2006-01"):
		t, err := time.Parse("2006-01", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("release date %q: %w", raw, ErrValidation)
		}
		return t.AddDate(0, 0, lastDayOfMonth[t.Month()]-1), nil
	case len("2006"):
		t, err := time.Parse("2006", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("release date %q: %w", raw, ErrValidation)
		}
		return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("release date %q: %w", raw, ErrValidation)
	}
}
