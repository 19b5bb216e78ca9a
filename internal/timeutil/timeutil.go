// Package timeutil provides helpers for formatting timings and parsing
// user supplied dates
package timeutil

import (
	"fmt"
	"math"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// Round rounds a time value in seconds to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// FormatSeconds renders a timing with millisecond precision.
func FormatSeconds(s float64) string {
	return fmt.Sprintf("%.3f", s)
}

// FormatDifference renders a signed deviation from the target, for example
// "+0.345" or "-0.100".
func FormatDifference(d float64) string {
	// avoid "-0.000" for deviations that round to zero
	if math.Abs(d) < 0.0005 {
		d = 0
	}

	return fmt.Sprintf("%+.3f", d)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// FromStr parses a human readable date such as "2 days ago" or
// "2026-03-01" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	cfg := &dps.Configuration{
		CurrentTime:         now,
		PreferredDateSource: dps.Past,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}
