package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/reschedule"
)

// TripStore holds the latest fetched copy of one trip and writes activity
// changes back through the API. After every write attempt, successful or
// not, the trip is fetched again and replaced wholesale.
type TripStore struct {
	c      *Client
	tripID uuid.UUID
	log    *slog.Logger

	mu   sync.RWMutex
	trip domain.Trip
}

var _ reschedule.TripStore = (*TripStore)(nil)

// NewTripStore fetches tripID and returns a store over it.
func NewTripStore(ctx context.Context, c *Client, tripID uuid.UUID, log *slog.Logger) (*TripStore, error) {
	s := &TripStore{c: c, tripID: tripID, log: log}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the most recently fetched trip.
func (s *TripStore) Current() domain.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trip
}

// Load fetches the trip again and replaces the stored copy.
func (s *TripStore) Load(ctx context.Context) error {
	trip, err := s.c.GetTrip(ctx, s.tripID)
	if err != nil {
		return fmt.Errorf("client.TripStore.Load: %w", err)
	}
	s.mu.Lock()
	s.trip = trip
	s.mu.Unlock()
	return nil
}

// UpdateActivity persists the full replacement activity, then refreshes.
// A failed refresh is logged; the returned error reflects the write only.
func (s *TripStore) UpdateActivity(ctx context.Context, activityID uuid.UUID, a domain.Activity) error {
	_, err := s.c.UpdateActivity(ctx, activityID, a)
	if rerr := s.Load(ctx); rerr != nil {
		s.log.WarnContext(ctx, "trip refresh failed", "trip_id", s.tripID, "error", rerr)
	}
	return err
}
