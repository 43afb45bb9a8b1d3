package reschedule_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/reschedule"
)

// fakeStore is a hand-written TripStore. update is optional; when nil every
// write succeeds.
type fakeStore struct {
	mu     sync.Mutex
	trip   domain.Trip
	update func(ctx context.Context, id uuid.UUID, a domain.Activity) error
	calls  []domain.Activity
}

func (f *fakeStore) Current() domain.Trip {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trip
}

func (f *fakeStore) UpdateActivity(ctx context.Context, id uuid.UUID, a domain.Activity) error {
	f.mu.Lock()
	f.calls = append(f.calls, a)
	update := f.update
	f.mu.Unlock()
	if update != nil {
		return update(ctx, id, a)
	}
	return nil
}

func (f *fakeStore) Calls() []domain.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Activity(nil), f.calls...)
}

// compile-time check: fakeStore must satisfy reschedule.TripStore.
var _ reschedule.TripStore = (*fakeStore)(nil)

// ---- helpers ---------------------------------------------------------------

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time { return &t }

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Alps",
		StartDate: day("2024-06-01"),
		EndDate:   day("2024-06-10"),
		Stops: []domain.Stop{{
			ID:          uuid.New(),
			CityName:    "Zermatt",
			ArrivalDate: day("2024-06-01"),
			Activities: []domain.Activity{{
				ID:          uuid.New(),
				Name:        "Gornergrat",
				Category:    domain.CategorySightseeing,
				Cost:        90,
				Description: "cog railway",
				StartTime:   "08:00",
				EndTime:     "12:00",
				DayOffset:   0,
			}},
		}},
	}
}

func newSession(t *testing.T, store *fakeStore) (*reschedule.Session, *reschedule.Recorder) {
	t.Helper()
	rec := &reschedule.Recorder{}
	s := reschedule.NewSession(store, rec)
	t.Cleanup(s.Wait)
	return s, rec
}

func activityID(store *fakeStore) uuid.UUID {
	return store.trip.Stops[0].Activities[0].ID
}

// ---- Begin -----------------------------------------------------------------

func TestSession_Begin(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	s, _ := newSession(t, store)

	require.Equal(t, reschedule.Idle, s.State())
	require.NoError(t, s.Begin(activityID(store)))

	id, dragging := s.Active()
	assert.True(t, dragging)
	assert.Equal(t, activityID(store), id)
	assert.Equal(t, reschedule.Dragging, s.State())
}

func TestSession_Begin_SecondGestureRejected(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	s, _ := newSession(t, store)

	require.NoError(t, s.Begin(activityID(store)))

	assert.ErrorIs(t, s.Begin(activityID(store)), reschedule.ErrGestureActive)
}

func TestSession_Begin_UnknownActivity(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	s, _ := newSession(t, store)

	assert.ErrorIs(t, s.Begin(uuid.New()), reschedule.ErrUnknownActivity)
	assert.Equal(t, reschedule.Idle, s.State())
}

func TestSession_Cancel(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	s, rec := newSession(t, store)
	require.NoError(t, s.Begin(activityID(store)))

	s.Cancel()

	assert.Equal(t, reschedule.Idle, s.State())
	assert.Empty(t, rec.Notifications())
}

// ---- Drop ------------------------------------------------------------------

func TestSession_Drop_WithoutBegin(t *testing.T) {
	s, _ := newSession(t, &fakeStore{trip: tripFixture()})

	_, err := s.Drop(context.Background(), ptr(day("2024-06-03")))

	assert.ErrorIs(t, err, reschedule.ErrNotDragging)
}

func TestSession_Drop_NoTarget(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	s, rec := newSession(t, store)
	require.NoError(t, s.Begin(activityID(store)))

	dec, err := s.Drop(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, domain.MoveNotMoved, dec.Outcome)
	assert.Equal(t, reschedule.Idle, s.State())
	assert.Empty(t, store.Calls())
	assert.Equal(t, []domain.Notification{{Level: domain.LevelInfo, Message: reschedule.MsgNotMoved}}, rec.Notifications())
}

func TestSession_Drop_SameDateIsNoop(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	s, rec := newSession(t, store)
	require.NoError(t, s.Begin(activityID(store)))

	dec, err := s.Drop(context.Background(), ptr(day("2024-06-01")))
	s.Wait()

	require.NoError(t, err)
	assert.Equal(t, domain.MoveUnchanged, dec.Outcome)
	assert.Empty(t, store.Calls(), "no persistence call for a same-date drop")
	assert.Empty(t, rec.Notifications())
}

func TestSession_Drop_OutsideTripRejected(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	s, rec := newSession(t, store)
	require.NoError(t, s.Begin(activityID(store)))

	dec, err := s.Drop(context.Background(), ptr(day("2024-06-15")))
	s.Wait()

	require.NoError(t, err)
	assert.Equal(t, domain.MoveRejected, dec.Outcome)
	assert.ErrorIs(t, dec.Err, domain.ErrValidation)
	assert.Empty(t, store.Calls())
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, domain.LevelError, last.Level)
	assert.Equal(t, reschedule.MsgOutsideTrip, last.Message)
}

func TestSession_Drop_Moves(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	s, rec := newSession(t, store)
	original := store.trip.Stops[0].Activities[0]
	require.NoError(t, s.Begin(original.ID))

	dec, err := s.Drop(context.Background(), ptr(day("2024-06-03")))
	require.NoError(t, err)
	assert.Equal(t, domain.MovePending, dec.Outcome)
	s.Wait()

	calls := store.Calls()
	require.Len(t, calls, 1)
	want := original
	want.StopID = store.trip.Stops[0].ID
	want.DayOffset = 2
	assert.Equal(t, want, calls[0], "full replacement payload with the new offset")

	assert.Equal(t, []domain.Notification{{Level: domain.LevelSuccess, Message: reschedule.MsgMoved}}, rec.Notifications())
}

func TestSession_Drop_PersistenceFailure(t *testing.T) {
	store := &fakeStore{
		trip: tripFixture(),
		update: func(context.Context, uuid.UUID, domain.Activity) error {
			return errors.New("502 bad gateway")
		},
	}
	s, rec := newSession(t, store)
	require.NoError(t, s.Begin(activityID(store)))

	_, err := s.Drop(context.Background(), ptr(day("2024-06-04")))
	require.NoError(t, err)
	s.Wait()

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, domain.Notification{Level: domain.LevelError, Message: reschedule.MsgFailed}, last)
}

func TestSession_IdleBeforeWriteSettles(t *testing.T) {
	release := make(chan struct{})
	store := &fakeStore{
		trip: tripFixture(),
		update: func(context.Context, uuid.UUID, domain.Activity) error {
			<-release
			return nil
		},
	}
	s, rec := newSession(t, store)
	require.NoError(t, s.Begin(activityID(store)))

	_, err := s.Drop(context.Background(), ptr(day("2024-06-02")))
	require.NoError(t, err)

	// The write is still blocked, yet the session accepts a new gesture.
	assert.Equal(t, reschedule.Idle, s.State())
	require.NoError(t, s.Begin(activityID(store)))
	s.Cancel()

	close(release)
	s.Wait()
	assert.Len(t, rec.Notifications(), 1)
}

func TestSession_Drop_CancelledContextStillPersists(t *testing.T) {
	var sawErr error
	store := &fakeStore{
		trip: tripFixture(),
		update: func(ctx context.Context, _ uuid.UUID, _ domain.Activity) error {
			sawErr = ctx.Err()
			return nil
		},
	}
	s, _ := newSession(t, store)
	require.NoError(t, s.Begin(activityID(store)))

	ctx, cancel := context.WithCancel(context.Background())
	_, err := s.Drop(ctx, ptr(day("2024-06-02")))
	cancel()
	require.NoError(t, err)
	s.Wait()

	assert.NoError(t, sawErr)
}

func TestSession_Close_DiscardsLateCompletion(t *testing.T) {
	release := make(chan struct{})
	store := &fakeStore{
		trip: tripFixture(),
		update: func(context.Context, uuid.UUID, domain.Activity) error {
			<-release
			return nil
		},
	}
	s, rec := newSession(t, store)
	require.NoError(t, s.Begin(activityID(store)))
	_, err := s.Drop(context.Background(), ptr(day("2024-06-02")))
	require.NoError(t, err)

	s.Close()
	close(release)
	s.Wait()

	assert.Len(t, store.Calls(), 1, "the write itself still happens")
	assert.Empty(t, rec.Notifications())
	assert.ErrorIs(t, s.Begin(activityID(store)), reschedule.ErrClosed)
}

func TestSession_NotifierReadsSession(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	var (
		mu     sync.Mutex
		states []reschedule.State
	)
	var s *reschedule.Session
	s = reschedule.NewSession(store, reschedule.NotifierFunc(func(domain.NotificationLevel, string) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s.State())
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, s.Begin(activityID(store)))
		_, err := s.Drop(context.Background(), nil)
		assert.NoError(t, err)

		assert.NoError(t, s.Begin(activityID(store)))
		_, err = s.Drop(context.Background(), ptr(day("2024-06-03")))
		assert.NoError(t, err)
		s.Wait()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier calling State blocked the session")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []reschedule.State{reschedule.Idle, reschedule.Idle}, states)
}

func TestSession_WaitConcurrentWithDrop(t *testing.T) {
	store := &fakeStore{trip: tripFixture()}
	s, rec := newSession(t, store)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			assert.NoError(t, s.Begin(activityID(store)))
			target := day("2024-06-02").AddDate(0, 0, i%5)
			_, err := s.Drop(context.Background(), &target)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			s.Wait()
		}
	}()
	wg.Wait()
	s.Wait()

	assert.Len(t, rec.Notifications(), 20)
	assert.Len(t, store.Calls(), 20)
}

// ---- notifiers -------------------------------------------------------------

func TestMulti(t *testing.T) {
	a, b := &reschedule.Recorder{}, &reschedule.Recorder{}

	reschedule.Multi(a, b).Notify(domain.LevelInfo, "hello")

	assert.Len(t, a.Notifications(), 1)
	assert.Len(t, b.Notifications(), 1)
}
