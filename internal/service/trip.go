// Package service holds the planner's business rules on top of the repo
// interfaces. Trips are scoped to the owner carried by the request's
// session; a trip owned by someone else is reported as domain.ErrNotFound.
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

// TripService implements business logic for Trip operations, including the
// read-only itinerary views (aggregate, month calendar, budget).
type TripService struct {
	trips      repo.TripRepo
	stops      repo.StopRepo
	activities repo.ActivityRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, stops repo.StopRepo, activities repo.ActivityRepo) *TripService {
	return &TripService{trips: trips, stops: stops, activities: activities}
}

// Create validates and persists a new trip owned by the caller.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip, err := normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, err
	}
	trip.Owner = ownerOf(ctx)
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID, without stops.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, ownerOf(ctx), id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListPaged(ctx, ownerOf(ctx), p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and updates an existing trip. New dates must still hold
// every stop and activity already planned.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip, err := normalizeTrip(trip)
	if err != nil {
		return domain.Trip{}, err
	}
	current, err := loadItinerary(ctx, s.trips, s.stops, s.activities, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := fitsTrip(trip, current.Stops); err != nil {
		return domain.Trip{}, err
	}
	trip.Owner = current.Owner
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip and everything under it.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, ownerOf(ctx), id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Copy duplicates a trip with its stops and activities as "Copy of <name>".
func (s *TripService) Copy(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	owner := ownerOf(ctx)
	src, err := s.trips.GetByID(ctx, owner, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Copy: %w", err)
	}
	result, err := s.trips.Copy(ctx, owner, id, "Copy of "+src.Name)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Copy: %w", err)
	}
	return result, nil
}

// normalizeTrip trims text fields and enforces:
//   - Name must be non-empty.
//   - StartDate and EndDate are both required and StartDate <= EndDate.
//   - Budget must not be negative.
func normalizeTrip(trip domain.Trip) (domain.Trip, error) {
	trip.Name = strings.TrimSpace(trip.Name)
	trip.Description = strings.TrimSpace(trip.Description)
	if trip.Name == "" {
		return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return domain.Trip{}, fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	trip.StartDate = calendar.DateOf(trip.StartDate)
	trip.EndDate = calendar.DateOf(trip.EndDate)
	if trip.EndDate.Before(trip.StartDate) {
		return domain.Trip{}, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if trip.Budget < 0 {
		return domain.Trip{}, fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	return trip, nil
}
