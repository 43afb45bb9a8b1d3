package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globetrotter/planner/internal/domain"
)

// StopRepo defines the persistence operations for Stops.
// All write and single-read operations are scoped by tripID to enforce ownership.
type StopRepo interface {
	// Create inserts a new stop and returns the persisted record.
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// GetByID retrieves a single stop by its UUID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)

	// Find retrieves a stop by ID alone. Used when only a child activity's
	// stop_id is known and the owning trip must be discovered.
	Find(ctx context.Context, stopID uuid.UUID) (domain.Stop, error)

	// ListByTripID returns all stops for a trip ordered by order_index, then
	// arrival_date.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// Update overwrites the mutable fields of a stop, scoped to stop.TripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// Delete removes a stop and its activities, scoped to the given tripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `id, trip_id, city_name, country, arrival_date, departure_date,
	transport_cost, transport_mode, order_index, created_at, updated_at`

func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		INSERT INTO stops (trip_id, city_name, country, arrival_date, departure_date,
		                   transport_cost, transport_mode, order_index)
		VALUES (@trip_id, @city_name, @country, @arrival_date, @departure_date,
		        @transport_cost, @transport_mode, @order_index)
		RETURNING ` + stopColumns

	row := r.db.QueryRow(ctx, q, stopArgs(stop))
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	const q = `SELECT ` + stopColumns + ` FROM stops WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID})
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) Find(ctx context.Context, stopID uuid.UUID) (domain.Stop, error) {
	const q = `SELECT ` + stopColumns + ` FROM stops WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": stopID})
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Find: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT ` + stopColumns + `
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY order_index, arrival_date, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	stops := []domain.Stop{}
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByTripID: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: rows: %w", err)
	}
	return stops, nil
}

func (r *pgStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		UPDATE stops
		SET city_name      = @city_name,
		    country        = @country,
		    arrival_date   = @arrival_date,
		    departure_date = @departure_date,
		    transport_cost = @transport_cost,
		    transport_mode = @transport_mode,
		    order_index    = @order_index,
		    updated_at     = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + stopColumns

	args := stopArgs(stop)
	args["id"] = stop.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanStop(row)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	const q = `DELETE FROM stops WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func stopArgs(s domain.Stop) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":        s.TripID,
		"city_name":      s.CityName,
		"country":        s.Country,
		"arrival_date":   s.ArrivalDate,
		"departure_date": s.DepartureDate, // nil becomes NULL
		"transport_cost": s.TransportCost,
		"transport_mode": s.TransportMode,
		"order_index":    s.OrderIndex,
	}
}

func scanStop(s scanner) (domain.Stop, error) {
	var (
		st                 domain.Stop
		id, tripID         pgtype.UUID
		arrival, departure pgtype.Date
	)

	err := s.Scan(&id, &tripID, &st.CityName, &st.Country, &arrival, &departure,
		&st.TransportCost, &st.TransportMode, &st.OrderIndex, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	st.ArrivalDate = arrival.Time
	if departure.Valid {
		d := departure.Time
		st.DepartureDate = &d
	}
	return st, nil
}
