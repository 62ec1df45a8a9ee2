package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
)

// TxRunner executes fn against a querier bound to a single transaction.
// fn returning an error rolls every write back.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(q dbgen.Querier) error) error
}

// Store bundles the generated queries with the pool that owns them.
type Store struct {
	*dbgen.Queries
	Pool *pgxpool.Pool
}

// NewStore wraps the pool with generated queries.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Queries: dbgen.New(pool), Pool: pool}
}

// WithinTx implements TxRunner using a read-committed pgx transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(q dbgen.Querier) error) error {
	if s == nil || s.Pool == nil {
		return errors.New("db: store not configured")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("db: begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(s.Queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("db: commit tx: %w", err)
	}
	return nil
}
