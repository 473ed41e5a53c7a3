package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/expedition/internal/save"
)

// SnapshotRepository stores save snapshots in the save_snapshots table,
// one row per slot with the encoded snapshot as a JSONB payload.
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a SnapshotRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool with the
// save_snapshots migration applied.
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save upserts snap into slot.
//
// Postcondition: A subsequent Load of slot returns snap with the current save.Version.
func (r *SnapshotRepository) Save(ctx context.Context, slot string, snap save.Snapshot) error {
	payload, err := save.Encode(snap)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO save_snapshots (slot, version, payload, saved_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (slot) DO UPDATE
		 SET version = EXCLUDED.version, payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at`,
		slot, save.Version, payload, snap.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("saving snapshot %q: %w", slot, err)
	}
	return nil
}

// Load returns the snapshot stored in slot.
//
// Postcondition: Returns save.ErrNotFound if the slot is empty.
func (r *SnapshotRepository) Load(ctx context.Context, slot string) (save.Snapshot, error) {
	var payload []byte
	err := r.db.QueryRow(ctx,
		`SELECT payload FROM save_snapshots WHERE slot = $1`, slot,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return save.Snapshot{}, fmt.Errorf("slot %q: %w", slot, save.ErrNotFound)
	}
	if err != nil {
		return save.Snapshot{}, fmt.Errorf("loading snapshot %q: %w", slot, err)
	}
	return save.Decode(payload)
}

// Delete removes the snapshot in slot. Deleting an empty slot is not an error.
func (r *SnapshotRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM save_snapshots WHERE slot = $1`, slot); err != nil {
		return fmt.Errorf("deleting snapshot %q: %w", slot, err)
	}
	return nil
}
