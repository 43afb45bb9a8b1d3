package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/domain"
)

// Placement is an activity pinned to its absolute calendar date.
// StopID and StopArrival are kept so a later move can recompute the offset.
type Placement struct {
	Activity    domain.Activity
	Date        time.Time
	StopID      uuid.UUID
	StopArrival time.Time
}

// Key returns the ISO date string used to group placements into day cells.
func (p Placement) Key() string {
	return FormatISO(p.Date)
}

// ActivityDate derives an activity's calendar date from its stop's arrival.
func ActivityDate(arrival time.Time, dayOffset int) time.Time {
	return AddDays(arrival, dayOffset)
}

// Project flattens every stop's activities into placements, in stop order and
// then activity order.
func Project(trip domain.Trip) []Placement {
	var out []Placement
	for _, s := range trip.Stops {
		arrival := DateOf(s.ArrivalDate)
		for _, a := range s.Activities {
			out = append(out, Placement{
				Activity:    a,
				Date:        ActivityDate(arrival, a.DayOffset),
				StopID:      s.ID,
				StopArrival: arrival,
			})
		}
	}
	return out
}

// GroupByDate buckets placements by ISO date, preserving input order within
// each bucket.
func GroupByDate(ps []Placement) map[string][]Placement {
	out := make(map[string][]Placement)
	for _, p := range ps {
		out[p.Key()] = append(out[p.Key()], p)
	}
	return out
}

// Cell is a grid day together with the activities placed on it, sorted and
// annotated with conflict flags.
type Cell struct {
	Day
	Entries []Entry
}

// Layout builds the complete month view for a trip.
func Layout(m Month, trip domain.Trip) []Cell {
	grid := BuildMonth(m, trip.StartDate, trip.EndDate)
	byDate := GroupByDate(Project(trip))

	cells := make([]Cell, len(grid))
	for i, d := range grid {
		cells[i] = Cell{Day: d, Entries: DetectConflicts(byDate[FormatISO(d.Date)])}
	}
	return cells
}
