package venues

import (
	"context"
	"time"

	"hopskip/internal/infra/dbx"
)

const queryTimeout = 5 * time.Second

type Store interface {
	ListCreatedBetween(ctx context.Context, from, to *time.Time) ([]Venue, error)
	GetByID(ctx context.Context, id int64) (*Venue, error)
}

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) Store {
	return &Repository{q: q}
}

// ListCreatedBetween returns all venues, optionally bounded by an inclusive
// created_at window. A nil bound leaves that side open.
func (r *Repository) ListCreatedBetween(ctx context.Context, from, to *time.Time) ([]Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		SELECT id, name, address, latitude, longitude, created_at
		FROM venues
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY name`

	rows, err := r.q.Query(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Venue
	for rows.Next() {
		var v Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Latitude, &v.Longitude, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		SELECT id, name, address, latitude, longitude, created_at
		FROM venues
		WHERE id = $1`

	var v Venue
	err := r.q.QueryRow(ctx, q, id).Scan(&v.ID, &v.Name, &v.Address, &v.Latitude, &v.Longitude, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
