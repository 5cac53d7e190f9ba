package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Postgres is a Store over a single kv table, for deployments that want the
// simulated backend's records in a real database instead of a local file.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects with the given DSN and ensures the kv table exists.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS kv_store (
			key   TEXT PRIMARY KEY,
			value JSONB NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure kv_store table: %w", err)
	}

	return &Postgres{db: db}, nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string, v any) error {
	var raw []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM kv_store WHERE key = $1`, key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read key %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode value at %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

var _ Store = (*Postgres)(nil)
