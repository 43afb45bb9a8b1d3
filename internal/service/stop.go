package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/repo"
)

// StopService needs the trips repo because a stop's arrival must fall
// inside its trip, and the activities repo because moving an arrival moves
// every activity planned relative to it.
type StopService struct {
	trips      repo.TripRepo
	stops      repo.StopRepo
	activities repo.ActivityRepo
}

func NewStopService(trips repo.TripRepo, stops repo.StopRepo, activities repo.ActivityRepo) *StopService {
	return &StopService{trips: trips, stops: stops, activities: activities}
}

// Create verifies the parent trip exists, validates the stop against it, then
// persists. Returns domain.ErrNotFound if the parent trip does not exist.
func (s *StopService) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	trip, err := s.trips.GetByID(ctx, ownerOf(ctx), stop.TripID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	stop, err = normalizeStop(stop, trip)
	if err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Create(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Create: %w", err)
	}
	return result, nil
}

func (s *StopService) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	if _, err := s.trips.GetByID(ctx, ownerOf(ctx), tripID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.GetByID: %w", err)
	}
	result, err := s.stops.GetByID(ctx, tripID, stopID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns the trip's stops in itinerary order, never nil.
func (s *StopService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	if _, err := s.trips.GetByID(ctx, ownerOf(ctx), tripID); err != nil {
		return nil, fmt.Errorf("service.StopService.ListByTripID: %w", err)
	}
	stops, err := s.stops.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.ListByTripID: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// Update validates the stop and rejects an arrival date that would push any
// of its activities outside the trip.
func (s *StopService) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	trip, err := s.trips.GetByID(ctx, ownerOf(ctx), stop.TripID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	stop, err = normalizeStop(stop, trip)
	if err != nil {
		return domain.Stop{}, err
	}
	acts, err := s.activities.ListByStopID(ctx, stop.ID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	planned := stop
	planned.Activities = acts
	if err := fitsTrip(trip, []domain.Stop{planned}); err != nil {
		return domain.Stop{}, err
	}
	result, err := s.stops.Update(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a stop and its activities, scoped to the given tripID.
func (s *StopService) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, ownerOf(ctx), tripID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	if err := s.stops.Delete(ctx, tripID, stopID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	return nil
}

// normalizeStop enforces the stop rules:
//   - CityName must be non-empty.
//   - ArrivalDate must lie within the trip.
//   - DepartureDate, if set, must not be before ArrivalDate.
//   - TransportCost must not be negative.
func normalizeStop(stop domain.Stop, trip domain.Trip) (domain.Stop, error) {
	stop.CityName = strings.TrimSpace(stop.CityName)
	stop.Country = strings.TrimSpace(stop.Country)
	if stop.CityName == "" {
		return domain.Stop{}, fmt.Errorf("%w: city_name is required", domain.ErrValidation)
	}
	if stop.ArrivalDate.IsZero() {
		return domain.Stop{}, fmt.Errorf("%w: arrival_date is required", domain.ErrValidation)
	}
	stop.ArrivalDate = calendar.DateOf(stop.ArrivalDate)
	if !trip.Contains(stop.ArrivalDate) {
		return domain.Stop{}, fmt.Errorf("%w: arrival_date must be within the trip dates", domain.ErrValidation)
	}
	if stop.DepartureDate != nil {
		d := calendar.DateOf(*stop.DepartureDate)
		if d.Before(stop.ArrivalDate) {
			return domain.Stop{}, fmt.Errorf("%w: departure_date must not be before arrival_date", domain.ErrValidation)
		}
		stop.DepartureDate = &d
	}
	if stop.TransportCost < 0 {
		return domain.Stop{}, fmt.Errorf("%w: transport_cost must not be negative", domain.ErrValidation)
	}
	return stop, nil
}
