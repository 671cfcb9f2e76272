package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS posts (
		id         BIGSERIAL PRIMARY KEY,
		title      TEXT,
		body       TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         BIGSERIAL PRIMARY KEY,
		post_id    BIGINT,
		name       TEXT,
		email      TEXT,
		body       TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS comments_post_id_idx ON comments (post_id)`,
}

// PostgresStore keeps posts and comments in two Postgres tables. comments.
// post_id carries no foreign key.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and makes sure both tables exist.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 10
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	store := &PostgresStore{pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// EnsureSchema creates the tables if they are missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Posts returns the post repository backed by this store.
func (s *PostgresStore) Posts() *PostgresPostRepository {
	return &PostgresPostRepository{pool: s.pool}
}

// Comments returns the comment repository backed by this store.
func (s *PostgresStore) Comments() *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: s.pool}
}

// Clear empties both tables and restarts their id sequences.
func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE posts, comments RESTART IDENTITY`)
	return err
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// bumpSerial keeps table's id sequence at or above its largest id so an
// explicit-id insert is never followed by a colliding generated id.
func bumpSerial(ctx context.Context, tx pgx.Tx, table string) error {
	q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'),
		GREATEST((SELECT MAX(id) FROM %[1]s), (SELECT last_value FROM %[1]s_id_seq)))`, table)
	if _, err := tx.Exec(ctx, q); err != nil {
		return fmt.Errorf("bump %s sequence: %w", table, err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
