package credits

import (
	"context"
	"time"

	"hopskip/internal/infra/dbx"
)

const queryTimeout = 5 * time.Second

type Store interface {
	Create(ctx context.Context, c *Credit) error
	ListByBookingID(ctx context.Context, bookingID int64) ([]Credit, error)
}

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) Store {
	return &Repository{q: q}
}

// Create inserts one credit row. The ledger is append-only; there is no
// update or delete path.
func (r *Repository) Create(ctx context.Context, c *Credit) error {
	const q = `
		INSERT INTO credits (booking_id, class_schedule_id, reference, credit_amount, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.q.QueryRow(ctx, q,
		c.BookingID,
		c.ClassScheduleID,
		c.Reference,
		c.CreditAmount,
		c.Reason,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *Repository) ListByBookingID(ctx context.Context, bookingID int64) ([]Credit, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		SELECT id, booking_id, class_schedule_id, reference, credit_amount, reason, created_at
		FROM credits
		WHERE booking_id = $1
		ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Credit
	for rows.Next() {
		var c Credit
		if err := rows.Scan(&c.ID, &c.BookingID, &c.ClassScheduleID, &c.Reference, &c.CreditAmount, &c.Reason, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
