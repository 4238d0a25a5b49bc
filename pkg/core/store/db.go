// Package store persists datasets, their normalized records, and chat
// history in Postgres via a shared pgx pool.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the database connection pool using the DATABASE_URL
// environment variable and creates the schema if it is missing.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return
		}

		err = ensureSchema(ctx)
	})
	return err
}

// ensureSchema creates the tables on first run. Idempotent.
func ensureSchema(ctx context.Context) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS datasets (
			id TEXT PRIMARY KEY,
			name TEXT,
			filename TEXT,
			row_count INT,
			columns JSONB,
			uploaded_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS financial_records (
			id BIGSERIAL PRIMARY KEY,
			dataset_id TEXT REFERENCES datasets(id) ON DELETE CASCADE,
			period TEXT,
			category TEXT,
			line_item TEXT,
			amount DOUBLE PRECISION
		);

		CREATE TABLE IF NOT EXISTS chat_messages (
			id BIGSERIAL PRIMARY KEY,
			dataset_id TEXT REFERENCES datasets(id) ON DELETE CASCADE,
			role TEXT,
			message TEXT,
			created_at TIMESTAMPTZ
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the database connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}
