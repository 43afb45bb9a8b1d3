package calendar

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/domain"
)

var (
	// ErrActivityNotFound means the dragged activity is not in the trip.
	ErrActivityNotFound = fmt.Errorf("%w: activity is not part of this trip", domain.ErrNotFound)

	// ErrOutsideTrip means the drop date lies outside [StartDate, EndDate].
	ErrOutsideTrip = fmt.Errorf("%w: cannot move activity outside trip dates", domain.ErrValidation)

	// ErrNoStopForDate means the drop date precedes every stop's arrival, so no
	// stop can own the activity with a non-negative day offset.
	ErrNoStopForDate = fmt.Errorf("%w: no stop has arrived by the target date", domain.ErrValidation)
)

// Move is the outcome of planning a drop.
//
// When Unchanged is true the activity already sits on Target and nothing
// should be persisted. Otherwise Patch is the full replacement activity to
// persist: every existing field plus the new DayOffset, and a new StopID when
// Reassigned is true.
type Move struct {
	From       Placement
	Target     time.Time
	Unchanged  bool
	Reassigned bool
	Patch      domain.Activity
}

// PlanMove decides how dropping activityID on target changes the itinerary.
//
// The day offset is recomputed against the owning stop's arrival. If that
// would make it negative, the activity is handed to the stop with the latest
// arrival on or before target.
func PlanMove(trip domain.Trip, activityID uuid.UUID, target time.Time) (Move, error) {
	target = DateOf(target)

	var (
		from  Placement
		found bool
	)
	for _, p := range Project(trip) {
		if p.Activity.ID == activityID {
			from, found = p, true
			break
		}
	}
	if !found {
		return Move{}, ErrActivityNotFound
	}

	mv := Move{From: from, Target: target}
	if from.Date.Equal(target) {
		mv.Unchanged = true
		return mv, nil
	}
	if !trip.Contains(target) {
		return Move{}, ErrOutsideTrip
	}

	patch := from.Activity
	patch.StopID = from.StopID
	patch.DayOffset = DaysBetween(from.StopArrival, target)

	if patch.DayOffset < 0 {
		owner, ok := coveringStop(trip.Stops, target)
		if !ok {
			return Move{}, ErrNoStopForDate
		}
		patch.StopID = owner.ID
		patch.DayOffset = DaysBetween(owner.ArrivalDate, target)
		mv.Reassigned = true
	}

	mv.Patch = patch
	return mv, nil
}

// coveringStop returns the stop with the latest arrival on or before d.
func coveringStop(stops []domain.Stop, d time.Time) (domain.Stop, bool) {
	var (
		best  domain.Stop
		found bool
	)
	for _, s := range stops {
		arrival := DateOf(s.ArrivalDate)
		if arrival.After(d) {
			continue
		}
		if !found || arrival.After(DateOf(best.ArrivalDate)) {
			best, found = s, true
		}
	}
	return best, found
}
