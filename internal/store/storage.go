package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("resource not found")
	QueryTimeoutDuration = time.Second * 5
)

// Storage is the legacy database/sql layer. Only the activity trail still
// lives here; everything else moved to the pgx repositories under
// internal/domain.
type Storage struct {
	Activity interface {
		Log(context.Context, *ActivityEntry) error
		ListRecent(context.Context, int, int) ([]ActivityEntry, error)
	}
}

func NewStorage(db *sql.DB) Storage {
	return Storage{
		Activity: &ActivityStore{db},
	}
}
