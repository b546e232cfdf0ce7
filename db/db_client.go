// Package db provides PostgreSQL data access for trips, users, ratings, and
// saved-trip bookmarks using pgxpool.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool the stores depend on. Accepting the
// interface instead of the concrete pool lets tests substitute a pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DatabaseClient wraps the shared connection pool handle. Its lifecycle is
// owned by the process entry point and it is injected into each store; there
// is no module-level singleton.
type DatabaseClient struct {
	pool Querier
}

// NewDatabaseClient creates a new DatabaseClient, wrapping the provided pool.
func NewDatabaseClient(pool Querier) *DatabaseClient {
	return &DatabaseClient{pool: pool}
}

// GetPool returns the underlying pool handle.
func (dc *DatabaseClient) GetPool() Querier {
	return dc.pool
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func WithTx(ctx context.Context, q Querier, fn func(tx pgx.Tx) error) error {
	tx, err := q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Rollback after a successful commit is a no-op.
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
