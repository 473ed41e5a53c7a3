package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/expedition/internal/game/engine"
	"github.com/cory-johannsen/expedition/internal/save"
	"github.com/cory-johannsen/expedition/internal/storage/postgres"
	"github.com/cory-johannsen/expedition/internal/testutil"
)

var _ save.Store = (*postgres.SnapshotRepository)(nil)

func setupRepo(t *testing.T) *postgres.SnapshotRepository {
	t.Helper()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return pc.Pool.Snapshots()
}

// TestSnapshotRepository verifies save, upsert, load, and delete against a live database.
func TestSnapshotRepository(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Load(ctx, "main")
	assert.True(t, errors.Is(err, save.ErrNotFound))

	s := engine.NewGame(now)
	s.Stage, s.MaxStage = 3, 4
	require.NoError(t, repo.Save(ctx, "main", engine.Snapshot(s, now)))

	s.Stage = 4
	s.Player.Gold = 999
	require.NoError(t, repo.Save(ctx, "main", engine.Snapshot(s, now.Add(time.Minute))))

	got, err := repo.Load(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, save.Version, got.Version)
	assert.Equal(t, 4, got.Stage)
	assert.Equal(t, 999, got.Player.Gold)
	assert.True(t, now.Add(time.Minute).Equal(got.SavedAt))

	require.NoError(t, repo.Delete(ctx, "main"))
	_, err = repo.Load(ctx, "main")
	assert.True(t, errors.Is(err, save.ErrNotFound))
}

// TestPool_Health verifies the pool answers a health check.
func TestPool_Health(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	assert.NoError(t, pc.Pool.Health(context.Background(), 5*time.Second))
}
