package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globetrotter/planner/internal/domain"
	"github.com/globetrotter/planner/internal/repo"
	"github.com/globetrotter/planner/internal/service"
)

// mockStopRepo is a hand-written test double for repo.StopRepo.
type mockStopRepo struct {
	create       func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	getByID      func(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)
	find         func(ctx context.Context, stopID uuid.UUID) (domain.Stop, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	update       func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete       func(ctx context.Context, tripID, stopID uuid.UUID) error
}

func (m *mockStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.create(ctx, stop)
}
func (m *mockStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, tripID, stopID)
}
func (m *mockStopRepo) Find(ctx context.Context, stopID uuid.UUID) (domain.Stop, error) {
	return m.find(ctx, stopID)
}
func (m *mockStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.update(ctx, stop)
}
func (m *mockStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, tripID, stopID)
}

// compile-time check: mockStopRepo must satisfy repo.StopRepo.
var _ repo.StopRepo = (*mockStopRepo)(nil)

func validStop(tripID uuid.UUID) domain.Stop {
	return domain.Stop{
		TripID:      tripID,
		CityName:    "Basel",
		ArrivalDate: day(2),
	}
}

func tripLookup() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, _ string, id uuid.UUID) (domain.Trip, error) {
			tr := validTrip()
			tr.ID = id
			return tr, nil
		},
	}
}

func echoStops() *mockStopRepo {
	return &mockStopRepo{
		create: func(_ context.Context, s domain.Stop) (domain.Stop, error) { return s, nil },
		update: func(_ context.Context, s domain.Stop) (domain.Stop, error) { return s, nil },
	}
}

func noActivities() *mockActivityRepo {
	return &mockActivityRepo{
		listByStopID: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) { return nil, nil },
	}
}

func TestStopService_Create_OK(t *testing.T) {
	svc := service.NewStopService(tripLookup(), echoStops(), noActivities())

	input := validStop(uuid.New())
	input.CityName = " Basel "
	got, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "Basel", got.CityName)
}

func TestStopService_Create_TripNotFound(t *testing.T) {
	svc := service.NewStopService(&mockTripRepo{
		getByID: func(_ context.Context, _ string, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}, &mockStopRepo{}, &mockActivityRepo{})

	_, err := svc.Create(context.Background(), validStop(uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopService_Create_Invalid(t *testing.T) {
	before := day(1)
	tests := []struct {
		name   string
		mutate func(*domain.Stop)
	}{
		{"blank city", func(s *domain.Stop) { s.CityName = "  " }},
		{"arrival before trip", func(s *domain.Stop) { s.ArrivalDate = day(1).AddDate(0, 0, -1) }},
		{"arrival after trip", func(s *domain.Stop) { s.ArrivalDate = day(15) }},
		{"departure before arrival", func(s *domain.Stop) { s.DepartureDate = &before }},
		{"negative transport cost", func(s *domain.Stop) { s.TransportCost = -5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewStopService(tripLookup(), echoStops(), noActivities())
			stop := validStop(uuid.New())
			tc.mutate(&stop)

			_, err := svc.Create(context.Background(), stop)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestStopService_Update_ValidatesAgainstTrip(t *testing.T) {
	svc := service.NewStopService(tripLookup(), echoStops(), noActivities())

	stop := validStop(uuid.New())
	stop.ID = uuid.New()
	stop.ArrivalDate = day(20)

	_, err := svc.Update(context.Background(), stop)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStopService_ListByTripID_Empty(t *testing.T) {
	svc := service.NewStopService(tripLookup(), &mockStopRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Stop, error) { return nil, nil },
	}, &mockActivityRepo{})

	got, err := svc.ListByTripID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestStopService_Delete_NotFound(t *testing.T) {
	svc := service.NewStopService(tripLookup(), &mockStopRepo{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return domain.ErrNotFound },
	}, &mockActivityRepo{})

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStopService_Update_ActivitiesMustStayInTrip(t *testing.T) {
	// The trip runs June 1 to 14; the activity sits five days after arrival.
	acts := &mockActivityRepo{
		listByStopID: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{{ID: uuid.New(), Name: "Rhine swim", DayOffset: 5}}, nil
		},
	}

	tests := []struct {
		name    string
		arrival int
		wantErr bool
	}{
		{"last activity on final day", 9, false},
		{"activity pushed past end", 10, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stops := echoStops()
			stops.update = func(_ context.Context, st domain.Stop) (domain.Stop, error) {
				if tc.wantErr {
					t.Fatal("stranding update must not persist")
				}
				return st, nil
			}
			svc := service.NewStopService(tripLookup(), stops, acts)

			stop := validStop(uuid.New())
			stop.ID = uuid.New()
			stop.ArrivalDate = day(tc.arrival)
			_, err := svc.Update(context.Background(), stop)

			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.ErrorContains(t, err, "Rhine swim")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStopService_OtherOwnersTrip(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, owner string, id uuid.UUID) (domain.Trip, error) {
			if owner != traveller {
				return domain.Trip{}, domain.ErrNotFound
			}
			tr := validTrip()
			tr.ID, tr.Owner = id, owner
			return tr, nil
		},
	}
	svc := service.NewStopService(trips, &mockStopRepo{}, &mockActivityRepo{})
	ctx := as("traveller-9")

	_, err := svc.Create(ctx, validStop(uuid.New()))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stop := validStop(uuid.New())
	stop.ID = uuid.New()
	_, err = svc.Update(ctx, stop)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), uuid.New()), domain.ErrNotFound)
}
