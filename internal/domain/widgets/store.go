package widgets

import (
	"context"
	"time"

	"hopskip/internal/infra/dbx"
)

const queryTimeout = 5 * time.Second

type Store interface {
	ListByAdmin(ctx context.Context, adminID int64) ([]Widget, error)
	Upsert(ctx context.Context, adminID int64, p Placement) error
}

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) Store {
	return &Repository{q: q}
}

func (r *Repository) ListByAdmin(ctx context.Context, adminID int64) ([]Widget, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		SELECT id, admin_id, widget_key, display_order, visible
		FROM admin_dashboard_widgets
		WHERE admin_id = $1
		ORDER BY display_order, widget_key`

	rows, err := r.q.Query(ctx, q, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Widget
	for rows.Next() {
		var w Widget
		if err := rows.Scan(&w.ID, &w.AdminID, &w.Key, &w.Order, &w.Visible); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Upsert creates the (admin, key) row on first configuration and rewrites
// order/visibility afterwards.
func (r *Repository) Upsert(ctx context.Context, adminID int64, p Placement) error {
	const q = `
		INSERT INTO admin_dashboard_widgets (admin_id, widget_key, display_order, visible)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (admin_id, widget_key)
		DO UPDATE SET display_order = EXCLUDED.display_order, visible = EXCLUDED.visible`

	_, err := r.q.Exec(ctx, q, adminID, p.Key, p.Order, p.Visible)
	return err
}
