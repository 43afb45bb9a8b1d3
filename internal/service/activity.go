package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/repo"
	"github.com/globetrotter/planner/internal/reschedule"
)

// ActivityService implements business logic for Activity operations and the
// server-side calendar move.
type ActivityService struct {
	trips      repo.TripRepo
	stops      repo.StopRepo
	activities repo.ActivityRepo
	notify     reschedule.Notifier
	log        *slog.Logger
}

// NewActivityService constructs an ActivityService. Move outcomes are reported
// to notify in addition to being returned to the caller.
func NewActivityService(trips repo.TripRepo, stops repo.StopRepo, activities repo.ActivityRepo,
	notify reschedule.Notifier, log *slog.Logger) *ActivityService {
	return &ActivityService{trips: trips, stops: stops, activities: activities, notify: notify, log: log}
}

// Create validates a new activity against its stop and trip, then persists it.
// Returns domain.ErrNotFound if the stop does not exist under tripID.
func (s *ActivityService) Create(ctx context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, ownerOf(ctx), tripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	stop, err := s.stops.GetByID(ctx, tripID, a.StopID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	a, err = normalizeActivity(a, stop, trip)
	if err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single activity of one of the caller's trips.
func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	result, _, err := s.owned(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.GetByID: %w", err)
	}
	return result, nil
}

// owned loads an activity and its trip. Activities under another caller's
// trip are reported as domain.ErrNotFound.
func (s *ActivityService) owned(ctx context.Context, id uuid.UUID) (domain.Activity, domain.Trip, error) {
	a, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return domain.Activity{}, domain.Trip{}, err
	}
	stop, err := s.stops.Find(ctx, a.StopID)
	if err != nil {
		return domain.Activity{}, domain.Trip{}, err
	}
	trip, err := s.trips.GetByID(ctx, ownerOf(ctx), stop.TripID)
	if err != nil {
		return domain.Activity{}, domain.Trip{}, err
	}
	return a, trip, nil
}

// Update replaces an activity wholesale. The payload may move the activity to
// another stop of the same trip; a stop_id from a different trip is rejected.
func (s *ActivityService) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	current, trip, err := s.owned(ctx, a.ID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	if a.StopID == uuid.Nil {
		a.StopID = current.StopID
	}
	stop, err := s.stops.GetByID(ctx, trip.ID, a.StopID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Activity{}, fmt.Errorf("%w: stop_id must belong to the same trip", domain.ErrValidation)
	}
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	a, err = normalizeActivity(a, stop, trip)
	if err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Update(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an activity of one of the caller's trips.
func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, _, err := s.owned(ctx, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	if err := s.activities.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// Move drops an activity on target, the server-side counterpart of a
// calendar drag. A nil target reports MoveNotMoved; the activity's current
// date reports MoveUnchanged without writing.
//
// Rejected drops return a MoveRejected result together with an error that
// wraps domain.ErrValidation and carries the user-facing message.
// Unknown activities return domain.ErrNotFound.
func (s *ActivityService) Move(ctx context.Context, tripID, activityID uuid.UUID, target *time.Time) (domain.MoveResult, error) {
	rec := &reschedule.Recorder{}
	n := reschedule.Multi(rec, s.notify)
	result := func(o domain.MoveOutcome, a *domain.Activity) domain.MoveResult {
		r := domain.MoveResult{Outcome: o, Activity: a}
		if last, ok := rec.Last(); ok {
			r.Notification = &last
		}
		return r
	}

	trip, err := loadItinerary(ctx, s.trips, s.stops, s.activities, tripID)
	if err != nil {
		return domain.MoveResult{}, fmt.Errorf("service.ActivityService.Move: %w", err)
	}
	if _, _, ok := trip.FindActivity(activityID); !ok {
		return domain.MoveResult{}, fmt.Errorf("service.ActivityService.Move: %w", calendar.ErrActivityNotFound)
	}
	if target == nil {
		n.Notify(domain.LevelInfo, reschedule.MsgNotMoved)
		return result(domain.MoveNotMoved, nil), nil
	}

	mv, err := calendar.PlanMove(trip, activityID, *target)
	var msg string
	switch {
	case errors.Is(err, calendar.ErrOutsideTrip):
		msg = reschedule.MsgOutsideTrip
	case errors.Is(err, calendar.ErrNoStopForDate):
		msg = reschedule.MsgNoStop
	case err != nil:
		return domain.MoveResult{}, fmt.Errorf("service.ActivityService.Move: %w", err)
	}
	if msg != "" {
		s.log.InfoContext(ctx, "activity move rejected",
			"trip_id", tripID,
			"activity_id", activityID,
			"target", calendar.FormatISO(*target),
		)
		n.Notify(domain.LevelError, msg)
		return result(domain.MoveRejected, nil), fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	}
	if mv.Unchanged {
		return result(domain.MoveUnchanged, nil), nil
	}

	updated, err := s.activities.Update(ctx, mv.Patch)
	if err != nil {
		n.Notify(domain.LevelError, reschedule.MsgFailed)
		return result(domain.MoveFailed, nil), fmt.Errorf("service.ActivityService.Move: %w", err)
	}
	s.log.InfoContext(ctx, "activity moved",
		"trip_id", tripID,
		"activity_id", activityID,
		"from", calendar.FormatISO(mv.From.Date),
		"to", calendar.FormatISO(mv.Target),
		"day_offset", mv.Patch.DayOffset,
		"reassigned", mv.Reassigned,
	)
	n.Notify(domain.LevelSuccess, reschedule.MsgMoved)
	return result(domain.MoveMoved, &updated), nil
}

// normalizeActivity enforces the activity rules against its stop and trip:
//   - Name must be non-empty.
//   - Category must be known; empty means Other. Stored in canonical case.
//   - Cost must not be negative.
//   - StartTime and EndTime, when set, must be valid clock times with
//     EndTime not before StartTime.
//   - DayOffset must not be negative and the derived date must lie within
//     the trip.
func normalizeActivity(a domain.Activity, stop domain.Stop, trip domain.Trip) (domain.Activity, error) {
	a.StopID = stop.ID
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return domain.Activity{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	cat, ok := domain.ParseCategory(string(a.Category))
	if !ok {
		return domain.Activity{}, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, a.Category)
	}
	a.Category = cat
	if a.Cost < 0 {
		return domain.Activity{}, fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}

	a.StartTime, a.EndTime = strings.TrimSpace(a.StartTime), strings.TrimSpace(a.EndTime)
	start, startOK := calendar.Minutes(a.StartTime)
	if a.StartTime != "" && !startOK {
		return domain.Activity{}, fmt.Errorf("%w: start_time must be HH:MM", domain.ErrValidation)
	}
	end, endOK := calendar.Minutes(a.EndTime)
	if a.EndTime != "" && !endOK {
		return domain.Activity{}, fmt.Errorf("%w: end_time must be HH:MM", domain.ErrValidation)
	}
	if startOK && endOK && end < start {
		return domain.Activity{}, fmt.Errorf("%w: end_time must not be before start_time", domain.ErrValidation)
	}

	if a.DayOffset < 0 {
		return domain.Activity{}, fmt.Errorf("%w: day_offset must not be negative", domain.ErrValidation)
	}
	if !trip.Contains(calendar.ActivityDate(stop.ArrivalDate, a.DayOffset)) {
		return domain.Activity{}, fmt.Errorf("%w: activity date must be within the trip dates", domain.ErrValidation)
	}
	return a, nil
}
