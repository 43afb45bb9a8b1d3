package service

import (
	"context"
	"fmt"

	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/session"
)

// ownerOf returns the subject of the caller's session. Without a session
// (auth disabled) every caller shares the empty owner.
func ownerOf(ctx context.Context) string {
	if s, ok := session.FromContext(ctx); ok {
		return s.Subject
	}
	return ""
}

// fitsTrip reports the first stop or activity in stops whose date falls
// outside trip.
func fitsTrip(trip domain.Trip, stops []domain.Stop) error {
	for _, st := range stops {
		if !trip.Contains(st.ArrivalDate) {
			return fmt.Errorf("%w: stop %s would arrive outside the trip dates", domain.ErrValidation, st.CityName)
		}
		for _, a := range st.Activities {
			if !trip.Contains(calendar.ActivityDate(st.ArrivalDate, a.DayOffset)) {
				return fmt.Errorf("%w: activity %q would fall outside the trip dates", domain.ErrValidation, a.Name)
			}
		}
	}
	return nil
}
