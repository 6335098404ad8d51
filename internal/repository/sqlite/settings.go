package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/repository"
)

// compile-time check that *DB implements repository.SettingsRepository
var _ repository.SettingsRepository = (*DB)(nil)

// Get returns the value stored under key.
// Returns apperror.ErrNotFound if the key has never been written.
func (db *DB) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := db.conn.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", apperror.NotFound(fmt.Sprintf("setting %q not found", key))
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: reading setting %q: %w", key, err)
	}

	return value, nil
}

// Set writes value under key, replacing any previous value.
//
// UPSERT:
// "INSERT ... ON CONFLICT(key) DO UPDATE" is SQLite's native upsert — one
// statement whether the key exists or not, no read-then-write race.
func (db *DB) Set(ctx context.Context, key, value string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: writing setting %q: %w", key, err)
	}
	return nil
}
