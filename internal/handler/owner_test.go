package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globetrotter/planner/internal/api"
	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/handler"
	"github.com/globetrotter/planner/internal/middleware"
	"github.com/globetrotter/planner/internal/repo"
	"github.com/globetrotter/planner/internal/reschedule"
	"github.com/globetrotter/planner/internal/service"
	"github.com/globetrotter/planner/internal/session"
)

// memTrips is an in-memory repo.TripRepo honouring owner scoping.
type memTrips struct {
	mu    sync.Mutex
	trips map[uuid.UUID]domain.Trip
}

func (m *memTrips) Create(_ context.Context, t domain.Trip) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.New()
	m.trips[t.ID] = t
	return t, nil
}

func (m *memTrips) GetByID(_ context.Context, owner string, id uuid.UUID) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.Owner != owner {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}

func (m *memTrips) ListPaged(_ context.Context, owner string, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Trip
	for _, t := range m.trips {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memTrips) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	if _, err := m.GetByID(ctx, t.Owner, t.ID); err != nil {
		return domain.Trip{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[t.ID] = t
	return t, nil
}

func (m *memTrips) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	if _, err := m.GetByID(ctx, owner, id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.trips, id)
	return nil
}

func (m *memTrips) Copy(ctx context.Context, owner string, id uuid.UUID, name string) (domain.Trip, error) {
	src, err := m.GetByID(ctx, owner, id)
	if err != nil {
		return domain.Trip{}, err
	}
	src.Name = name
	return m.Create(ctx, src)
}

var _ repo.TripRepo = (*memTrips)(nil)

// noStops and noActivities serve empty itineraries; other methods panic.
type noStops struct{ repo.StopRepo }

func (noStops) ListByTripID(context.Context, uuid.UUID) ([]domain.Stop, error) { return nil, nil }

type noActivities struct{ repo.ActivityRepo }

func (noActivities) ListByTripID(context.Context, uuid.UUID) ([]domain.Activity, error) {
	return nil, nil
}

const ownerSecret = "owner-secret"

// newOwnedAPI mounts real services over memTrips behind the auth middleware.
func newOwnedAPI(secret string) http.Handler {
	trips := &memTrips{trips: map[uuid.UUID]domain.Trip{}}
	stops, acts := noStops{}, noActivities{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(
		service.NewTripService(trips, stops, acts),
		service.NewStopService(trips, stops, acts),
		service.NewActivityService(trips, stops, acts, &reschedule.Recorder{}, log),
		service.NewExportService(trips, stops, acts),
		log,
	)
	r := chi.NewRouter()
	r.Use(middleware.NewAuth(secret))
	srv.Mount(r)
	return r
}

func callAs(t *testing.T, h http.Handler, subject, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if subject != "" {
		tok, err := session.NewToken([]byte(ownerSecret), session.Session{Subject: subject}, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const rhineBody = `{"name":"Rhine Summer","start_date":"2024-06-01","end_date":"2024-06-14","budget":500}`

func TestTrips_ScopedToTokenSubject(t *testing.T) {
	h := newOwnedAPI(ownerSecret)

	rec := callAs(t, h, "alice", http.MethodPost, "/trips", rhineBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[api.Trip](t, rec)
	assert.Equal(t, "alice", created.Owner)
	path := "/trips/" + created.Id.String()

	rec = callAs(t, h, "alice", http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = callAs(t, h, "bob", http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "trip not found", decode[api.ErrorResponse](t, rec).Error.Message)

	rec = callAs(t, h, "bob", http.MethodGet, "/trips", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[api.TripList](t, rec).Data)

	rec = callAs(t, h, "bob", http.MethodPut, path, strings.Replace(rhineBody, "Rhine Summer", "Taken", 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = callAs(t, h, "bob", http.MethodPost, path+"/copy", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = callAs(t, h, "bob", http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = callAs(t, h, "alice", http.MethodGet, "/trips", "")
	list := decode[api.TripList](t, rec)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Rhine Summer", list.Data[0].Name)
}

func TestTrips_SharedWhenAuthDisabled(t *testing.T) {
	h := newOwnedAPI("")

	rec := callAs(t, h, "", http.MethodPost, "/trips", rhineBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[api.Trip](t, rec)
	assert.Empty(t, created.Owner)

	rec = callAs(t, h, "", http.MethodGet, "/trips/"+created.Id.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
