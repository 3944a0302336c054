package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// -------------------------
// Deadlock policy:
// Every read-check-write sequence locks in this order (for the same event_id):
//   1) events row (FOR UPDATE)
//   2) requests row for (event_id, requester_id) if needed (FOR UPDATE)
// Likes and requests never lock rows of different events in one tx, so no
// cross-event cycles are possible.
// -------------------------

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// runTx wraps fn in a transaction with rollback-on-error semantics.
func (r *Repository) runTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
