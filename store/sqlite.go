package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS icons (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`

// SQLiteKV is a durable KV backed by a single-table SQLite database.
type SQLiteKV struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite-backed KV at path.
func OpenSQLite(path string) (*SQLiteKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store: storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("store: ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLiteKV{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteKV) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *SQLiteKV) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}
	return s.sqlDB.PingContext(ctx)
}

// Get returns the stored values for the given keys, or all pairs when no
// keys are given.
func (s *SQLiteKV) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, ErrNotConfigured
	}

	var (
		rows *sql.Rows
		err  error
	)
	if len(keys) == 0 {
		rows, err = s.sqlDB.QueryContext(ctx, `SELECT key, value FROM icons`)
	} else {
		placeholders := strings.Repeat("?,", len(keys))
		placeholders = placeholders[:len(placeholders)-1]
		args := make([]any, len(keys))
		for i, k := range keys {
			args[i] = k
		}
		rows, err = s.sqlDB.QueryContext(ctx,
			`SELECT key, value FROM icons WHERE key IN (`+placeholders+`)`, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("store: get: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: get: %w", err)
	}
	return out, nil
}

// Set stores one value under one key, replacing any previous value.
func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO icons (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("store: set: %w", err)
	}
	return nil
}

// Remove deletes the given keys. Idempotent.
func (s *SQLiteKV) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}
	if len(keys) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(keys))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM icons WHERE key IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("store: remove: %w", err)
	}
	return nil
}

// BytesInUse reports the approximate aggregate footprint of all pairs.
func (s *SQLiteKV) BytesInUse(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, ErrNotConfigured
	}
	var total int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(LENGTH(key) + LENGTH(value)), 0) FROM icons`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("store: bytes in use: %w", err)
	}
	return total, nil
}

// Ensure SQLiteKV implements KV
var _ KV = (*SQLiteKV)(nil)
