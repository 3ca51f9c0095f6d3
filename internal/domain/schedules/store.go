package schedules

import (
	"context"
	"fmt"
	"time"

	"hopskip/internal/infra/dbx"
)

const queryTimeout = 5 * time.Second

type Store interface {
	ListByVenueIDs(ctx context.Context, venueIDs []int64) ([]ClassSchedule, error)
	ListByAdmin(ctx context.Context, adminID int64, from, to *time.Time) ([]ClassSchedule, error)
	MarkCancelled(ctx context.Context, id int64) error
}

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) Store {
	return &Repository{q: q}
}

func (r *Repository) ListByVenueIDs(ctx context.Context, venueIDs []int64) ([]ClassSchedule, error) {
	if len(venueIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		SELECT id, venue_id, day_of_week, start_time, end_time, capacity, status, created_by, created_at
		FROM class_schedules
		WHERE venue_id = ANY($1)
		ORDER BY venue_id, day_of_week, start_time`

	rows, err := r.q.Query(ctx, q, venueIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSchedules(rows)
}

// ListByAdmin returns the schedules created by one admin, optionally bounded
// by an inclusive created_at window. Every dashboard read is scoped through
// this admin id; there is no unscoped listing.
func (r *Repository) ListByAdmin(ctx context.Context, adminID int64, from, to *time.Time) ([]ClassSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		SELECT id, venue_id, day_of_week, start_time, end_time, capacity, status, created_by, created_at
		FROM class_schedules
		WHERE created_by = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY id`

	rows, err := r.q.Query(ctx, q, adminID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSchedules(rows)
}

// MarkCancelled flips one schedule to cancelled. Runs inside the caller's
// transaction when invoked through the unit-of-work.
func (r *Repository) MarkCancelled(ctx context.Context, id int64) error {
	const q = `UPDATE class_schedules SET status = $1 WHERE id = $2`

	tag, err := r.q.Exec(ctx, q, StatusCancelled, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("class schedule %d not found", id)
	}
	return nil
}

func scanSchedules(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]ClassSchedule, error) {
	var out []ClassSchedule
	for rows.Next() {
		var c ClassSchedule
		if err := rows.Scan(&c.ID, &c.VenueID, &c.DayOfWeek, &c.StartTime, &c.EndTime, &c.Capacity, &c.Status, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
