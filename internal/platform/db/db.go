package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// OpenPostgres opens a pooled Postgres connection via the pgx stdlib driver
// and verifies it before returning.
func OpenPostgres(ctx context.Context, databaseURL string) (*sql.DB, error) {
	d, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	d.SetMaxOpenConns(10)
	d.SetMaxIdleConns(10)
	d.SetConnMaxLifetime(30 * time.Minute)

	if err := d.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return d, nil
}

// OpenSqlite opens the local SQLite database used when no DATABASE_URL is
// configured. Writes are serialized onto one connection; the driver does not
// handle concurrent writers well.
func OpenSqlite(ctx context.Context, path string) (*sql.DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", path, err)
	}

	d.SetMaxOpenConns(1)

	if err := d.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", path, err)
	}

	return d, nil
}
