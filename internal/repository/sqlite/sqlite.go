// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single file.
// No separate database server to install, configure, or manage. Perfect for:
// - A single key-value setting (the theme preference) that must survive restarts
// - Single-server deployments (which is most apps, honestly)
// - Development and testing (use ":memory:" for an in-memory DB)
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere Go works.
package sqlite

import (
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// The underscore import `_ "modernc.org/sqlite"` is a "side-effect only" import.
	// The sqlite package's init() function registers itself with database/sql as a
	// driver named "sqlite". After this import, sql.Open("sqlite", ...) knows how
	// to talk to SQLite.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides repository methods.
//
// WHY WRAP sql.DB IN A STRUCT?
// 1. We can attach methods to it (Get, Set)
// 2. It implements repository.SettingsRepository
// 3. We control the lifecycle (New creates it, Close destroys it)
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/devfinder.db"  → file-based database (persistent)
//   - ":memory:"           → in-memory database (great for tests, lost on close)
func New(dbPath string) (*DB, error) {
	// sql.Open() does NOT actually open a connection — it just creates a
	// pool manager. The first real connection happens on the first query,
	// so we Ping() to surface a bad path or permissions problem right away.
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL (Write-Ahead Logging) mode:
	// Default SQLite locks the entire database during writes. WAL allows
	// concurrent reads WHILE a write is happening — the theme can be read
	// for page renders while a preference write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
// Wherever you call New(), immediately defer Close() — it flushes the WAL
// and releases the file lock even if something panics later.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate runs all database migrations.
// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating settings table: %w", err)
	}

	return nil
}
