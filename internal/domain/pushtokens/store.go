package pushtokens

import (
	"context"
	"encoding/json"
	"time"

	"hopskip/internal/infra/dbx"
)

const queryTimeout = 5 * time.Second

type Store interface {
	AddOrUpdatePushToken(ctx context.Context, adminID int64, token string, deviceInfo json.RawMessage) error
	RemovePushToken(ctx context.Context, adminID int64, token string) error
	GetTokensByAdminIDs(ctx context.Context, adminIDs []int64) (map[int64][]string, error)
}

type Repository struct {
	q dbx.Querier
}

func NewRepository(q dbx.Querier) Store {
	return &Repository{q: q}
}

// AddOrUpdatePushToken upserts token + device info, updates last_updated
func (r *Repository) AddOrUpdatePushToken(ctx context.Context, adminID int64, token string, deviceInfo json.RawMessage) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `
		INSERT INTO admin_push_tokens (admin_id, expo_push_token, device_info, last_updated)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (admin_id, expo_push_token)
		DO UPDATE SET device_info = EXCLUDED.device_info, last_updated = NOW()`

	_, err := r.q.Exec(ctx, q, adminID, token, deviceInfo)
	return err
}

func (r *Repository) RemovePushToken(ctx context.Context, adminID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `DELETE FROM admin_push_tokens WHERE admin_id = $1 AND expo_push_token = $2`
	_, err := r.q.Exec(ctx, q, adminID, token)
	return err
}

// GetTokensByAdminIDs returns each admin's registered device tokens keyed by
// admin id.
func (r *Repository) GetTokensByAdminIDs(ctx context.Context, adminIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string)
	if len(adminIDs) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const q = `SELECT admin_id, expo_push_token FROM admin_push_tokens WHERE admin_id = ANY($1)`
	rows, err := r.q.Query(ctx, q, adminIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var id int64
	var token string
	for rows.Next() {
		if err := rows.Scan(&id, &token); err != nil {
			return nil, err
		}
		result[id] = append(result[id], token)
	}
	return result, rows.Err()
}
