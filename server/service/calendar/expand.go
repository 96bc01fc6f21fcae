package calendar

import (
	"time"
)

// ExpandHours converts the half-open range [start, end) into the discrete
// one-hour slots it covers, identified by their start instants. A range with
// end <= start expands to zero slots rather than an error.
//
// Pure and deterministic; expansion is recomputed on every read since ranges
// are bounded by human-scale scheduling windows.
func ExpandHours(start, end time.Time) []time.Time {
	slots := []time.Time{}
	for cursor := start; cursor.Before(end); cursor = cursor.Add(time.Hour) {
		slots = append(slots, cursor)
	}
	return slots
}
