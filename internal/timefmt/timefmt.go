// Package timefmt handles the ISO 8601 timestamps exchanged at the service
// boundary. Stamps are parsed leniently (optional fractional seconds and UTC
// offset) and always rendered in the canonical second-precision form, so the
// lexicographic order of rendered stamps equals their chronological order.
package timefmt

import (
	"time"

	"github.com/pkg/errors"
)

// Stamp is the canonical wire layout for instants.
const Stamp = "2006-01-02T15:04:05"

// acceptedLayouts are tried in order when parsing boundary input.
var acceptedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	Stamp,
	"2006-01-02T15:04",
}

// Parse converts an ISO 8601 string into a time.Time.
func Parse(value string) (time.Time, error) {
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid ISO 8601 timestamp: %q", value)
}

// Format renders an instant in the canonical wire layout.
func Format(t time.Time) string {
	return t.Format(Stamp)
}

// TruncateHour discards minutes, seconds, and sub-second components.
func TruncateHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
