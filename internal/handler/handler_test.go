package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/globetrotter/planner/internal/api"
	"github.com/globetrotter/planner/internal/calendar"
	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/handler"
	"github.com/globetrotter/planner/internal/service"
)

// ---- mocks -------------------------------------------------------------------

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getItinerary func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete       func(ctx context.Context, id uuid.UUID) error
	copy         func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	calendar     func(ctx context.Context, id uuid.UUID, m *calendar.Month) (service.MonthView, error)
	budget       func(ctx context.Context, id uuid.UUID) (domain.BudgetSummary, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetItinerary(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getItinerary(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) Copy(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.copy(ctx, id)
}
func (m *mockTripServicer) Calendar(ctx context.Context, id uuid.UUID, mo *calendar.Month) (service.MonthView, error) {
	return m.calendar(ctx, id, mo)
}
func (m *mockTripServicer) Budget(ctx context.Context, id uuid.UUID) (domain.BudgetSummary, error) {
	return m.budget(ctx, id)
}

// mockStopServicer is a test double for handler.StopServicer.
type mockStopServicer struct {
	create func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	update func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete func(ctx context.Context, tripID, stopID uuid.UUID) error
}

func (m *mockStopServicer) Create(ctx context.Context, s domain.Stop) (domain.Stop, error) {
	return m.create(ctx, s)
}
func (m *mockStopServicer) Update(ctx context.Context, s domain.Stop) (domain.Stop, error) {
	return m.update(ctx, s)
}
func (m *mockStopServicer) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, tripID, stopID)
}

// mockActivityServicer is a test double for handler.ActivityServicer.
type mockActivityServicer struct {
	create func(ctx context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error)
	update func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	delete func(ctx context.Context, id uuid.UUID) error
	move   func(ctx context.Context, tripID, activityID uuid.UUID, target *time.Time) (domain.MoveResult, error)
}

func (m *mockActivityServicer) Create(ctx context.Context, tripID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, tripID, a)
}
func (m *mockActivityServicer) Update(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.update(ctx, a)
}
func (m *mockActivityServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockActivityServicer) Move(ctx context.Context, tripID, activityID uuid.UUID, target *time.Time) (domain.MoveResult, error) {
	return m.move(ctx, tripID, activityID, target)
}

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, tripID)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer     = (*mockTripServicer)(nil)
	_ handler.StopServicer     = (*mockStopServicer)(nil)
	_ handler.ActivityServicer = (*mockActivityServicer)(nil)
	_ handler.ExportServicer   = (*mockExportServicer)(nil)
)

// ---- helpers -------------------------------------------------------------------

// deps groups the mocks; zero-valued mocks panic if an unexpected method runs.
type deps struct {
	trips      *mockTripServicer
	stops      *mockStopServicer
	activities *mockActivityServicer
	export     *mockExportServicer
}

// newHTTPHandler mounts a Server built from d on a chi router, the same way
// main.go does.
func newHTTPHandler(d deps) http.Handler {
	if d.trips == nil {
		d.trips = &mockTripServicer{}
	}
	if d.stops == nil {
		d.stops = &mockStopServicer{}
	}
	if d.activities == nil {
		d.activities = &mockActivityServicer{}
	}
	if d.export == nil {
		d.export = &mockExportServicer{}
	}
	srv := handler.NewServer(d.trips, d.stops, d.activities, d.export, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Get("/healthz", handler.GetHealth)
	srv.Mount(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Rhine Summer",
		StartDate: day(1),
		EndDate:   day(14),
		Budget:    500,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// ---- health ----------------------------------------------------------------------

func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	rec := do(t, newHTTPHandler(deps{}), http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[api.HealthResponse](t, rec)
	require.Equal(t, "ok", body.Status)
}
