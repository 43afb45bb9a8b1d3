package calendar

import (
	"fmt"
	"time"
)

// Month identifies a displayed calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("calendar.ParseMonth: %w", err)
	}
	return MonthOf(t), nil
}

// First returns the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last day of the month.
func (m Month) Last() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Next returns the following month.
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// Contains reports whether d falls within the month.
func (m Month) Contains(d time.Time) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

func (m Month) String() string {
	return m.First().Format("2006-01")
}

// Day is one square of the month grid.
type Day struct {
	Date           time.Time
	IsCurrentMonth bool
	IsTripDay      bool
}

// StartOfWeek returns the Sunday on or before d.
func StartOfWeek(d time.Time) time.Time {
	d = DateOf(d)
	return AddDays(d, -int(d.Weekday()))
}

// EndOfWeek returns the Saturday on or after d.
func EndOfWeek(d time.Time) time.Time {
	d = DateOf(d)
	return AddDays(d, int(time.Saturday-d.Weekday()))
}

// BuildMonth returns the display grid for m: whole Sunday-to-Saturday weeks
// from the week containing the 1st to the week containing the last day.
// The result length is always a multiple of 7.
//
// A day is a trip day when it lies in [tripStart, tripEnd]. If either bound
// is zero no day is a trip day.
func BuildMonth(m Month, tripStart, tripEnd time.Time) []Day {
	first := StartOfWeek(m.First())
	last := EndOfWeek(m.Last())
	hasRange := !tripStart.IsZero() && !tripEnd.IsZero()
	start, end := DateOf(tripStart), DateOf(tripEnd)

	days := make([]Day, 0, DaysBetween(first, last)+1)
	for d := first; !d.After(last); d = AddDays(d, 1) {
		days = append(days, Day{
			Date:           d,
			IsCurrentMonth: m.Contains(d),
			IsTripDay:      hasRange && !d.Before(start) && !d.After(end),
		})
	}
	return days
}
