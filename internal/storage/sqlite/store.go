// Package sqlite provides a single-file snapshot store backed by the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/expedition/internal/save"
)

const schema = `CREATE TABLE IF NOT EXISTS save_snapshots (
	slot     TEXT    PRIMARY KEY,
	version  INTEGER NOT NULL,
	payload  BLOB    NOT NULL,
	saved_at TEXT    NOT NULL
);`

// Store persists snapshots in a SQLite database file.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the database at path and ensures the
// snapshot table exists.
//
// Postcondition: Returns a ready Store or a non-nil error; on error no
// connection is left open.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serializes writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save implements save.Store.
func (s *Store) Save(ctx context.Context, slot string, snap save.Snapshot) error {
	payload, err := save.Encode(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO save_snapshots (slot, version, payload, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE
		SET version = excluded.version, payload = excluded.payload, saved_at = excluded.saved_at
	`, slot, save.Version, payload, snap.SavedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("snapshot save %q: %w", slot, err)
	}
	return nil
}

// Load implements save.Store.
func (s *Store) Load(ctx context.Context, slot string) (save.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM save_snapshots WHERE slot = ?`, slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return save.Snapshot{}, fmt.Errorf("slot %q: %w", slot, save.ErrNotFound)
	}
	if err != nil {
		return save.Snapshot{}, fmt.Errorf("snapshot load %q: %w", slot, err)
	}
	return save.Decode(payload)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
