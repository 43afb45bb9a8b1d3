// Package calendar holds the date arithmetic behind the itinerary calendar:
// month grids, projection of activities onto absolute dates, same-day
// conflict detection, and planning of drag-and-drop moves.
//
// Every function here is pure. Calendar dates are represented as time.Time
// values at UTC midnight so that day arithmetic never crosses a DST boundary.
package calendar

import (
	"fmt"
	"time"
)

// ISODate is the layout used for calendar dates on the wire and as map keys.
const ISODate = "2006-01-02"

const day = 24 * time.Hour

// DateOf returns the calendar date of t (in t's own location) as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after d (n may be negative).
func AddDays(d time.Time, n int) time.Time {
	return DateOf(d).AddDate(0, 0, n)
}

// DaysBetween returns the signed number of calendar days from `from` to `to`.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)) / day)
}

// FormatISO formats d as "YYYY-MM-DD".
func FormatISO(d time.Time) string {
	return d.Format(ISODate)
}

// ParseISO parses a "YYYY-MM-DD" string into a calendar date.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar.ParseISO: %w", err)
	}
	return t, nil
}
