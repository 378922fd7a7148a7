// Package pgstore implements all five storage ports over PostgreSQL
// using pgx/pgxpool, the way the teacher's internal/db package wraps a
// connection pool. Tables are keyed directly by the SHA-1 hex hash the
// object model already computes — there is no separate surrogate key.
package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store holds the connection pool every adapter in this package shares.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against url and verifies it with a ping.
func Connect(ctx context.Context, url string) (*Store, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URL: %w", err)
	}
	config.MaxConns = 16
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Exec runs sql without returning rows.
func (s *Store) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := s.pool.Exec(ctx, sql, args...)
	return err
}

// Query runs sql and returns rows.
func (s *Store) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return s.pool.Query(ctx, sql, args...)
}

// QueryRow runs sql and returns a single row.
func (s *Store) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.pool.QueryRow(ctx, sql, args...)
}

// execAffected runs sql and reports the number of rows it affected,
// used by CompareAndSwap to detect whether its conditional write took
// effect.
func (s *Store) execAffected(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) Blobs() blobAdapter      { return blobAdapter{s} }
func (s *Store) Trees() treeAdapter      { return treeAdapter{s} }
func (s *Store) Commits() commitAdapter  { return commitAdapter{s} }
func (s *Store) Refs() refAdapter        { return refAdapter{s} }
func (s *Store) Staging() stagingAdapter { return stagingAdapter{s} }
