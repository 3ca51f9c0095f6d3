package bookings

import (
	"context"
	"errors"
	"time"

	"hopskip/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

const queryTimeout = 5 * time.Second

var (
	ErrNotFound      = errors.New("booking not found")
	ErrBadTransition = errors.New("booking is not in a state that allows this transition")
)

type Store interface {
	ListForCapacity(ctx context.Context, f CapacityFilter) ([]CapacityRow, error)
	ListStudentsByBookingIDs(ctx context.Context, bookingIDs []int64) ([]Student, error)
	ListByScheduleIDs(ctx context.Context, scheduleIDs []int64, from, to *time.Time) ([]Booking, error)
	CountStudents(ctx context.Context, bookingIDs []int64) (int64, error)
	GetDetail(ctx context.Context, id int64) (*Detail, error)
	TransitionStatus(ctx context.Context, id int64, to string, allowedFrom []string) error
}

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) Store {
	return &Repository{q: q}
}

// ListForCapacity returns free and paid bookings joined through their class
// schedule to the owning venue. Bookings with no schedule are excluded; they
// cannot contribute to any class's tally.
func (r *Repository) ListForCapacity(ctx context.Context, f CapacityFilter) ([]CapacityRow, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		SELECT b.id, b.class_schedule_id, b.booking_type, b.status, b.trial_date, b.booked_by, b.created_at,
		       cs.venue_id
		FROM bookings b
		JOIN class_schedules cs ON cs.id = b.class_schedule_id
		JOIN venues v ON v.id = cs.venue_id
		WHERE b.booking_type IN ('free', 'paid')
		  AND ($1::bigint = 0 OR cs.venue_id = $1)
		  AND ($2::bigint = 0 OR b.booked_by = $2)
		  AND ($3::text = '' OR b.status = $3)
		  AND ($4::date IS NULL OR b.trial_date::date = $4)
		ORDER BY b.id`

	rows, err := r.q.Query(ctx, q, f.VenueID, f.BookedBy, f.Status, f.TrialDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CapacityRow
	for rows.Next() {
		var cr CapacityRow
		if err := rows.Scan(&cr.ID, &cr.ClassScheduleID, &cr.BookingType, &cr.Status, &cr.TrialDate, &cr.BookedBy, &cr.CreatedAt, &cr.VenueID); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (r *Repository) ListStudentsByBookingIDs(ctx context.Context, bookingIDs []int64) ([]Student, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		SELECT id, booking_id, first_name, last_name, age
		FROM booking_students
		WHERE booking_id = ANY($1)
		ORDER BY id`

	rows, err := r.q.Query(ctx, q, bookingIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.BookingID, &s.FirstName, &s.LastName, &s.Age); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByScheduleIDs returns bookings belonging to the given schedules,
// optionally bounded by an inclusive created_at window.
func (r *Repository) ListByScheduleIDs(ctx context.Context, scheduleIDs []int64, from, to *time.Time) ([]Booking, error) {
	if len(scheduleIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		SELECT id, class_schedule_id, booking_type, status, trial_date, booked_by, created_at
		FROM bookings
		WHERE class_schedule_id = ANY($1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY id`

	rows, err := r.q.Query(ctx, q, scheduleIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.ClassScheduleID, &b.BookingType, &b.Status, &b.TrialDate, &b.BookedBy, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) CountStudents(ctx context.Context, bookingIDs []int64) (int64, error) {
	if len(bookingIDs) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `SELECT COUNT(*) FROM booking_students WHERE booking_id = ANY($1)`

	var n int64
	if err := r.q.QueryRow(ctx, q, bookingIDs).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) GetDetail(ctx context.Context, id int64) (*Detail, error) {
	const q = `
		SELECT b.id, b.class_schedule_id, b.booking_type, b.status, b.trial_date, b.booked_by, b.created_at,
		       COALESCE(cs.day_of_week, ''), COALESCE(cs.start_time, ''), COALESCE(cs.end_time, ''),
		       COALESCE(v.name, '')
		FROM bookings b
		LEFT JOIN class_schedules cs ON cs.id = b.class_schedule_id
		LEFT JOIN venues v ON v.id = cs.venue_id
		WHERE b.id = $1`

	var d Detail
	err := r.q.QueryRow(ctx, q, id).Scan(
		&d.ID, &d.ClassScheduleID, &d.BookingType, &d.Status, &d.TrialDate, &d.BookedBy, &d.CreatedAt,
		&d.ScheduleDay, &d.ScheduleStartTime, &d.ScheduleEndTime,
		&d.VenueName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// TransitionStatus moves a booking to a new status only when its current
// status is in allowedFrom. Distinguishes a missing booking from one in the
// wrong state so callers can report the right failure.
func (r *Repository) TransitionStatus(ctx context.Context, id int64, to string, allowedFrom []string) error {
	const q = `UPDATE bookings SET status = $1 WHERE id = $2 AND status = ANY($3)`

	tag, err := r.q.Exec(ctx, q, to, id, allowedFrom)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrBadTransition
}
