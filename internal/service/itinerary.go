package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/budget"
	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/repo"
)

// MonthView is one month of a trip's calendar.
type MonthView struct {
	Trip  domain.Trip
	Month calendar.Month
	Cells []calendar.Cell
}

// GetItinerary returns the trip aggregate: the trip with its ordered stops,
// each carrying its ordered activities.
func (s *TripService) GetItinerary(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := loadItinerary(ctx, s.trips, s.stops, s.activities, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetItinerary: %w", err)
	}
	return trip, nil
}

// Calendar lays the itinerary out on a month grid. A nil month selects the
// month containing the trip's start date.
func (s *TripService) Calendar(ctx context.Context, id uuid.UUID, month *calendar.Month) (MonthView, error) {
	trip, err := loadItinerary(ctx, s.trips, s.stops, s.activities, id)
	if err != nil {
		return MonthView{}, fmt.Errorf("service.TripService.Calendar: %w", err)
	}
	m := calendar.MonthOf(trip.StartDate)
	if month != nil {
		m = *month
	}
	return MonthView{Trip: trip, Month: m, Cells: calendar.Layout(m, trip)}, nil
}

// Budget summarizes planned spending against the trip budget.
func (s *TripService) Budget(ctx context.Context, id uuid.UUID) (domain.BudgetSummary, error) {
	trip, err := loadItinerary(ctx, s.trips, s.stops, s.activities, id)
	if err != nil {
		return domain.BudgetSummary{}, fmt.Errorf("service.TripService.Budget: %w", err)
	}
	return budget.Summarize(trip), nil
}

// loadItinerary assembles the caller's trip aggregate from the three repos.
// Activities arrive already ordered per stop; they are attached to their stop
// by stop_id.
func loadItinerary(ctx context.Context, trips repo.TripRepo, stops repo.StopRepo, activities repo.ActivityRepo, id uuid.UUID) (domain.Trip, error) {
	trip, err := trips.GetByID(ctx, ownerOf(ctx), id)
	if err != nil {
		return domain.Trip{}, err
	}
	ss, err := stops.ListByTripID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	acts, err := activities.ListByTripID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}

	byStop := make(map[uuid.UUID][]domain.Activity, len(ss))
	for _, a := range acts {
		byStop[a.StopID] = append(byStop[a.StopID], a)
	}
	trip.Stops = make([]domain.Stop, len(ss))
	for i, st := range ss {
		st.Activities = byStop[st.ID]
		if st.Activities == nil {
			st.Activities = []domain.Activity{}
		}
		trip.Stops[i] = st
	}
	return trip, nil
}
