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

// ActivityRepo defines the persistence operations for Activities.
//
// Times travel as "HH:MM" strings; an empty string is stored as NULL.
type ActivityRepo interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// GetByID returns domain.ErrNotFound if the activity does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByStopID returns a stop's activities ordered by day_offset, then
	// start_time (untimed first).
	ListByStopID(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error)

	// ListByTripID returns every activity under the trip's stops, in the same
	// order as ListByStopID within each stop.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// Update replaces every mutable column, including stop_id.
	Update(ctx context.Context, a domain.Activity) (domain.Activity, error)

	Delete(ctx context.Context, id uuid.UUID) error
}

type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `a.id, a.stop_id, a.name, a.category, a.cost, a.description,
	COALESCE(to_char(a.start_time, 'HH24:MI'), ''),
	COALESCE(to_char(a.end_time, 'HH24:MI'), ''),
	a.day_offset, a.created_at, a.updated_at`

const activityOrder = `a.day_offset, a.start_time NULLS FIRST, a.created_at`

func (r *pgActivityRepo) Create(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	const q = `
		WITH a AS (
			INSERT INTO activities (stop_id, name, category, cost, description,
			                        start_time, end_time, day_offset)
			VALUES (@stop_id, @name, @category, @cost, @description,
			        NULLIF(@start_time, '')::time, NULLIF(@end_time, '')::time, @day_offset)
			RETURNING *
		)
		SELECT ` + activityColumns + ` FROM a`

	row := r.db.QueryRow(ctx, q, activityArgs(act))
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities a WHERE a.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByStopID(ctx context.Context, stopID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities a
		WHERE a.stop_id = @stop_id
		ORDER BY ` + activityOrder

	acts, err := r.list(ctx, q, pgx.NamedArgs{"stop_id": stopID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByStopID: %w", err)
	}
	return acts, nil
}

func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities a
		JOIN stops s ON s.id = a.stop_id
		WHERE s.trip_id = @trip_id
		ORDER BY s.order_index, s.arrival_date, ` + activityOrder

	acts, err := r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	return acts, nil
}

func (r *pgActivityRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	acts := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return acts, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, act domain.Activity) (domain.Activity, error) {
	const q = `
		WITH a AS (
			UPDATE activities
			SET stop_id     = @stop_id,
			    name        = @name,
			    category    = @category,
			    cost        = @cost,
			    description = @description,
			    start_time  = NULLIF(@start_time, '')::time,
			    end_time    = NULLIF(@end_time, '')::time,
			    day_offset  = @day_offset,
			    updated_at  = now()
			WHERE id = @id
			RETURNING *
		)
		SELECT ` + activityColumns + ` FROM a`

	args := activityArgs(act)
	args["id"] = act.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM activities WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func activityArgs(a domain.Activity) pgx.NamedArgs {
	return pgx.NamedArgs{
		"stop_id":     a.StopID,
		"name":        a.Name,
		"category":    string(a.Category),
		"cost":        a.Cost,
		"description": a.Description,
		"start_time":  a.StartTime,
		"end_time":    a.EndTime,
		"day_offset":  a.DayOffset,
	}
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a          domain.Activity
		id, stopID pgtype.UUID
		category   string
	)

	err := s.Scan(&id, &stopID, &a.Name, &category, &a.Cost, &a.Description,
		&a.StartTime, &a.EndTime, &a.DayOffset, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.StopID = uuid.UUID(stopID.Bytes)
	a.Category = domain.Category(category)
	return a, nil
}
