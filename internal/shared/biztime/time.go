// Package biztime centralizes time handling for billing records.
// All storage and transport use UTC; implicit Local timezone is
// prohibited so period boundaries compare cleanly across hosts.
package biztime

import (
	"fmt"
	"time"
)

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToUTC converts a time (any timezone) to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FormatAPITime formats a UTC time using RFC3339, the format the billing
// provider uses on the wire.
func FormatAPITime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseAPITime parses an RFC3339 timestamp from a provider payload and
// normalizes it to UTC.
func ParseAPITime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
