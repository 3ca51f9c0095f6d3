package storage

import (
	"context"
	"fmt"

	"hopskip/internal/domain/bookings"
	"hopskip/internal/domain/credits"
	"hopskip/internal/domain/pushtokens"
	"hopskip/internal/domain/schedules"
	"hopskip/internal/domain/venues"
	"hopskip/internal/domain/widgets"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool       *pgxpool.Pool
	Venues     venues.Store
	Schedules  schedules.Store
	Bookings   bookings.Store
	Credits    credits.Store
	Widgets    widgets.Store
	PushTokens pushtokens.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:       db,
		Venues:     venues.NewRepository(db),
		Schedules:  schedules.NewRepository(db),
		Bookings:   bookings.NewRepository(db),
		Credits:    credits.NewRepository(db),
		Widgets:    widgets.NewRepository(db),
		PushTokens: pushtokens.NewRepository(db),
	}
}

// TxStores is a temporary, tx-scoped set of repos for one atomic unit of
// work: a booking transition plus its side effects commits or rolls back as
// a whole.
type TxStores struct {
	Bookings  bookings.Store
	Schedules schedules.Store
	Credits   credits.Store
	Widgets   widgets.Store
}

// UnitOfWork is what transition services depend on, so tests can swap in a
// fake runner with mock stores.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(tx *TxStores) error) error
}

// WithTx runs fn against tx-scoped repositories. Rollback is issued
// unconditionally on the way out; it is a no-op after a successful commit.
func (c *Container) WithTx(ctx context.Context, fn func(tx *TxStores) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	s := &TxStores{
		Bookings:  bookings.NewRepository(tx),
		Schedules: schedules.NewRepository(tx),
		Credits:   credits.NewRepository(tx),
		Widgets:   widgets.NewRepository(tx),
	}

	if err := fn(s); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
