package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one audit-trail row. Writes are fire-and-forget: a failed
// insert is logged by the caller and never aborts the primary operation.
type ActivityEntry struct {
	ID        string          `json:"id"`
	Actor     int64           `json:"actor"`
	Panel     string          `json:"panel"`
	Module    string          `json:"module"`
	Action    string          `json:"action"`
	Payload   json.RawMessage `json:"payload"`
	Success   bool            `json:"success"`
	CreatedAt time.Time       `json:"created_at"`
}

type ActivityStore struct {
	db *sql.DB
}

func (s *ActivityStore) Log(ctx context.Context, e *ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Payload == nil {
		e.Payload = json.RawMessage("{}")
	}

	const q = `
		INSERT INTO activity_logs (id, actor, panel, module, action, payload, success)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, q, e.ID, e.Actor, e.Panel, e.Module, e.Action, []byte(e.Payload), e.Success)
	return err
}

func (s *ActivityStore) ListRecent(ctx context.Context, limit, offset int) ([]ActivityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	const q = `
		SELECT id, actor, panel, module, action, payload, success, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		var payload []byte
		if err := rows.Scan(&e.ID, &e.Actor, &e.Panel, &e.Module, &e.Action, &payload, &e.Success, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Payload = json.RawMessage(payload)
		out = append(out, e)
	}
	return out, rows.Err()
}
