// Package repo persists trips, stops and activities in Postgres.
// Validation and rescheduling rules belong to the service layer.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globetrotter/planner/internal/domain"
)

// db is satisfied by *pgxpool.Pool and pgx.Tx. Begin on a pgx.Tx opens a
// savepoint, so TripRepo.Copy also works inside a rolled-back test tx.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo stores trip headers. Stops and activities live in their own repos.
//
// Every read and write is scoped to an owner, the subject of the caller's
// session. A trip belonging to someone else behaves as if it did not exist.
// The empty owner is the unauthenticated deployment's shared namespace.
type TripRepo interface {
	// Create inserts trip under trip.Owner and returns it with id and
	// timestamps filled in.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID loads the trip header only, or domain.ErrNotFound.
	GetByID(ctx context.Context, owner string, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of trips ordered by start_date descending,
	// plus the total number of trips.
	ListPaged(ctx context.Context, owner string, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update replaces name, dates, budget and cover of a trip owned by
	// trip.Owner.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and, through ON DELETE CASCADE, its stops and
	// activities. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, owner string, id uuid.UUID) error

	// Copy duplicates a trip with all of its stops and activities under a new
	// name, in a single transaction, and returns the new trip.
	Copy(ctx context.Context, owner string, id uuid.UUID, name string) (domain.Trip, error)
}

type pgTripRepo struct {
	db db
}

// NewTripRepo returns a Postgres TripRepo.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner, name, description, start_date, end_date, budget, cover_photo_url, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner, name, description, start_date, end_date, budget, cover_photo_url)
		VALUES (@owner, @name, @description, @start_date, @end_date, @budget, @cover_photo_url)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, owner string, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id AND owner = @owner`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner": owner})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListPaged(ctx context.Context, owner string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM trips WHERE owner = @owner`,
		pgx.NamedArgs{"owner": owner}).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner = @owner
		ORDER BY start_date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner": owner, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}
	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name            = @name,
		    description     = @description,
		    start_date      = @start_date,
		    end_date        = @end_date,
		    budget          = @budget,
		    cover_photo_url = @cover_photo_url,
		    updated_at      = now()
		WHERE id = @id AND owner = @owner
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = @id AND owner = @owner`,
		pgx.NamedArgs{"id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) Copy(ctx context.Context, owner string, id uuid.UUID, name string) (domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Copy: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	trips := NewTripRepo(tx)
	stops := NewStopRepo(tx)
	activities := NewActivityRepo(tx)

	src, err := trips.GetByID(ctx, owner, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Copy: %w", err)
	}
	src.Name = name
	dst, err := trips.Create(ctx, src)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Copy: %w", err)
	}

	srcStops, err := stops.ListByTripID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Copy: %w", err)
	}
	for _, s := range srcStops {
		oldID := s.ID
		s.TripID = dst.ID
		ns, err := stops.Create(ctx, s)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Copy: stop: %w", err)
		}
		acts, err := activities.ListByStopID(ctx, oldID)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Copy: %w", err)
		}
		for _, a := range acts {
			a.StopID = ns.ID
			if _, err := activities.Create(ctx, a); err != nil {
				return domain.Trip{}, fmt.Errorf("repo.TripRepo.Copy: activity: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Copy: commit: %w", err)
	}
	return dst, nil
}

func tripArgs(t domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"owner":           t.Owner,
		"name":            t.Name,
		"description":     t.Description,
		"start_date":      t.StartDate,
		"end_date":        t.EndDate,
		"budget":          t.Budget,
		"cover_photo_url": t.CoverPhotoURL,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip reads tripColumns in order.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id         pgtype.UUID
		start, end pgtype.Date
	)

	err := s.Scan(&id, &t.Owner, &t.Name, &t.Description, &start, &end, &t.Budget,
		&t.CoverPhotoURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = start.Time
	t.EndDate = end.Time
	return t, nil
}
