package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Farmstead_Go/internal/database"
	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/repository"
	"github.com/osse101/Farmstead_Go/internal/repository/farmtest"
)

func openRepo(t *testing.T, path string) *FarmRepository {
	t.Helper()
	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db, database.DialectSQLite))
	return NewFarmRepository(db)
}

func TestFarmRepository(t *testing.T) {
	farmtest.Run(t, func(t *testing.T) repository.Farm {
		return openRepo(t, filepath.Join(t.TempDir(), "farm.db"))
	})
}

func TestFarmRepository_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.db")
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db, database.DialectSQLite))
	require.NoError(t, NewFarmRepository(db).SaveFarm(ctx, farmtest.SampleFarm("kept", now)))
	require.NoError(t, db.Close())

	repo := openRepo(t, path)
	got, err := repo.LoadFarm(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, 1234, got.Treasury)
	assert.Equal(t, domain.DifficultyHard, got.Difficulty)
}

func TestFarmRepository_Ping(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "farm.db"))
	assert.NoError(t, repo.Ping(context.Background()))
}
