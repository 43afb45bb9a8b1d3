// Package reschedule implements the drag-and-drop session that moves an
// activity from one calendar day to another.
//
// A Session is a two-state machine (Idle, Dragging). Dropping always returns
// it to Idle before any persistence happens; the write to the TripStore runs
// in the background and only drives a notification. The session never edits
// its view of the trip: it reads TripStore.Current on every gesture and relies
// on the store to replace the trip wholesale after each write attempt.
package reschedule

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
)

// State is the gesture state of a Session.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

var (
	ErrGestureActive   = errors.New("reschedule: a drag gesture is already in progress")
	ErrNotDragging     = errors.New("reschedule: no drag gesture in progress")
	ErrUnknownActivity = errors.New("reschedule: activity is not on the calendar")
	ErrClosed          = errors.New("reschedule: session closed")
)

// Messages reported to the Notifier.
const (
	MsgNotMoved    = "Activity not moved"
	MsgOutsideTrip = "Cannot move activity outside trip dates"
	MsgNoStop      = "No stop has arrived by that date"
	MsgMoved       = "Activity moved successfully"
	MsgFailed      = "Failed to move activity"
)

// TripStore supplies the current trip and persists activity changes.
// UpdateActivity receives the full replacement activity, never a partial
// patch, and is expected to refresh Current once the attempt completes.
type TripStore interface {
	Current() domain.Trip
	UpdateActivity(ctx context.Context, activityID uuid.UUID, activity domain.Activity) error
}

// Decision describes what Drop decided. When Outcome is domain.MovePending
// the write has been dispatched; its result arrives through the Notifier.
type Decision struct {
	ActivityID uuid.UUID
	Outcome    domain.MoveOutcome
	Move       calendar.Move
	Err        error
}

// Session tracks one pointer's drag gestures over a trip calendar.
// Safe for concurrent use. The Notifier may call back into the session,
// except for Close.
type Session struct {
	store  TripStore
	notify Notifier
	log    *slog.Logger

	mu      sync.Mutex
	state   State
	active  uuid.UUID
	closed  bool
	pending int
	settled sync.Cond // on mu; broadcast when pending drops to zero

	// notifyMu serialises notifications against Close. It is never held
	// together with mu.
	notifyMu sync.Mutex
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for gesture diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// NewSession returns an Idle session over store that reports to n.
func NewSession(store TripStore, n Notifier, opts ...Option) *Session {
	s := &Session{store: store, notify: n, log: slog.Default()}
	s.settled.L = &s.mu
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current gesture state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active returns the dragged activity while a gesture is in progress.
func (s *Session) Active() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.state == Dragging
}

// Begin starts dragging activityID.
func (s *Session) Begin(activityID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return ErrClosed
	case s.state == Dragging:
		return ErrGestureActive
	}
	if _, _, ok := s.store.Current().FindActivity(activityID); !ok {
		return ErrUnknownActivity
	}
	s.state, s.active = Dragging, activityID
	return nil
}

// Cancel abandons the current gesture without a notification.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state, s.active = Idle, uuid.Nil
}

// Drop ends the gesture on target. A nil target means the pointer was
// released outside every day cell.
//
// The session is Idle again by the time Drop returns. Valid moves are
// persisted in the background; use Wait to block until they settle.
func (s *Session) Drop(ctx context.Context, target *time.Time) (Decision, error) {
	s.mu.Lock()
	if s.state != Dragging {
		s.mu.Unlock()
		return Decision{}, ErrNotDragging
	}
	id := s.active
	s.state, s.active = Idle, uuid.Nil
	s.mu.Unlock()

	dec := Decision{ActivityID: id}
	if target == nil {
		s.emit(domain.LevelInfo, MsgNotMoved)
		dec.Outcome = domain.MoveNotMoved
		return dec, nil
	}

	mv, err := calendar.PlanMove(s.store.Current(), id, *target)
	switch {
	case errors.Is(err, calendar.ErrOutsideTrip):
		s.emit(domain.LevelError, MsgOutsideTrip)
		dec.Outcome, dec.Err = domain.MoveRejected, err
		return dec, nil
	case errors.Is(err, calendar.ErrNoStopForDate):
		s.emit(domain.LevelError, MsgNoStop)
		dec.Outcome, dec.Err = domain.MoveRejected, err
		return dec, nil
	case err != nil:
		// The activity disappeared from a refreshed trip mid-gesture.
		s.emit(domain.LevelError, MsgFailed)
		return dec, err
	}

	dec.Move = mv
	if mv.Unchanged {
		dec.Outcome = domain.MoveUnchanged
		return dec, nil
	}

	dec.Outcome = domain.MovePending
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
	go s.persist(context.WithoutCancel(ctx), mv)
	return dec, nil
}

func (s *Session) persist(ctx context.Context, mv calendar.Move) {
	defer s.settle()

	err := s.store.UpdateActivity(ctx, mv.Patch.ID, mv.Patch)
	if err != nil {
		s.log.WarnContext(ctx, "activity move failed",
			"activity_id", mv.Patch.ID,
			"target", calendar.FormatISO(mv.Target),
			"error", err,
		)
		s.emit(domain.LevelError, MsgFailed)
		return
	}
	s.log.DebugContext(ctx, "activity moved",
		"activity_id", mv.Patch.ID,
		"target", calendar.FormatISO(mv.Target),
		"day_offset", mv.Patch.DayOffset,
	)
	s.emit(domain.LevelSuccess, MsgMoved)
}

func (s *Session) settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending--
	if s.pending == 0 {
		s.settled.Broadcast()
	}
}

// emit forwards to the notifier unless the session has been closed.
// notifyMu rather than mu is held across Notify, so the notifier can read
// the session while Close still waits for it to return.
func (s *Session) emit(level domain.NotificationLevel, message string) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		s.log.Debug("notification discarded after close", "message", message)
		return
	}
	s.notify.Notify(level, message)
}

// Wait blocks until every write dispatched before the call has settled.
// Writes dispatched while Wait is blocked are waited for as well. It may be
// called concurrently with Drop.
func (s *Session) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.pending > 0 {
		s.settled.Wait()
	}
}

// Close tears the session down. Pending writes still run to completion but
// their notifications are dropped. Once Close returns no further
// notification is delivered; a notification already in progress finishes
// first.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.state, s.active = Idle, uuid.Nil
	s.mu.Unlock()

	s.notifyMu.Lock()
	s.notifyMu.Unlock() //nolint:staticcheck // barrier for an in-flight emit
}
