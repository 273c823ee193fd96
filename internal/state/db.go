// Package state records presented frames in SQLite so that a run can be
// inspected after the terminal is gone. The database normally lives at
// .cellgrid/frames.db in the project; see config.RecordDBPath.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DB is a frame database. Writes are serialized; the recorder and the
// frames command may share one file through WAL.
type DB struct {
	conn *sql.DB
	path string
	mu   sync.RWMutex
}

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys=ON",
	// A recorder may be writing while 'cellgrid frames' reads.
	"PRAGMA busy_timeout=2000",
}

// Open opens or creates the frame database at path, creating parent
// directories as needed. Call Migrate before use.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	return &DB{conn: conn, path: path}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn.Close()
}

// Path returns the database file.
func (db *DB) Path() string {
	return db.path
}

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{1, "sessions", `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	demo TEXT NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	started_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);
`},
	{2, "frames", `
CREATE TABLE IF NOT EXISTS frames (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	content TEXT NOT NULL,
	evaluated INTEGER NOT NULL DEFAULT 0,
	reused INTEGER NOT NULL DEFAULT 0,
	captured_at DATETIME NOT NULL,
	UNIQUE(session_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_frames_session_id ON frames(session_id);
`},
}

// SchemaVersion is the version Migrate brings a database to.
var SchemaVersion = migrations[len(migrations)-1].version

// Migrate brings the schema up to SchemaVersion. Each step commits on its
// own, so a failure leaves the database at the last good version.
func (db *DB) Migrate() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	current, err := db.version()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		err := db.inTx(func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.sql); err != nil {
				return err
			}
			_, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("migrate v%d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

// Version reports the schema version currently applied.
func (db *DB) Version() (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.version()
}

func (db *DB) version() (int, error) {
	var v int
	err := db.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return v, nil
}

func (db *DB) exec(query string, args ...any) (sql.Result, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn.Exec(query, args...)
}

func (db *DB) query(query string, args ...any) (*sql.Rows, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn.Query(query, args...)
}

func (db *DB) queryRow(query string, args ...any) *sql.Row {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn.QueryRow(query, args...)
}

// Transaction runs fn in a transaction, rolling back if it returns an
// error.
func (db *DB) Transaction(fn func(tx *sql.Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.inTx(fn)
}

// inTx expects db.mu to be held.
func (db *DB) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// timeLayout is fixed width so that stored timestamps compare correctly as
// strings. Frames of one session often share a second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func timestamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// PurgeSessions deletes sessions started before cutoff, with their
// frames, and returns how many sessions went.
func (db *DB) PurgeSessions(cutoff time.Time) (int64, error) {
	c := timestamp(cutoff)

	var n int64
	err := db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			DELETE FROM frames WHERE session_id IN (SELECT id FROM sessions WHERE started_at < ?)
		`, c); err != nil {
			return fmt.Errorf("purge frames: %w", err)
		}
		res, err := tx.Exec(`DELETE FROM sessions WHERE started_at < ?`, c)
		if err != nil {
			return fmt.Errorf("purge sessions: %w", err)
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
