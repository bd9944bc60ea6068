// Package farmtest holds the behaviour every repository.Farm implementation must share.
package farmtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/repository"
)

// SampleFarm returns a farm with every kind of field populated
func SampleFarm(id string, updated time.Time) *domain.FarmState {
	created := updated.Add(-time.Hour)
	return &domain.FarmState{
		ID:         id,
		Difficulty: domain.DifficultyHard,
		Plots: []domain.Plot{
			{Index: 0, Soil: domain.SoilTilled, Moisture: domain.MoistureWet, Crop: domain.CropPumpkin, Stage: domain.StageSprout, Progress: 37.5},
			{Index: 1, Soil: domain.SoilDepleted, Moisture: domain.MoistureDry},
			domain.NewPlot(2),
		},
		Barn: []domain.BarnSlot{
			{Index: 0, Animal: domain.AnimalCow, Hungry: false, Ready: false, Progress: 12.25},
			{Index: 1, Animal: domain.AnimalChicken, Hungry: true, Ready: true},
			domain.NewBarnSlot(2),
		},
		Inventory: domain.Inventory{"wheat": 4, "egg": 2},
		Treasury:  1234,
		Upgrades:  domain.UpgradeSet{Sprinkler: true, FieldLevel: 1, BarnLevel: 1},
		TickCount: 98765,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

// Run exercises a repository.Farm implementation. newRepo must return an empty store.
func Run(t *testing.T, newRepo func(t *testing.T) repository.Farm) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("save then load round trips the whole state", func(t *testing.T) {
		repo := newRepo(t)
		want := SampleFarm("farm-a", now)

		require.NoError(t, repo.SaveFarm(ctx, want))
		got, err := repo.LoadFarm(ctx, "farm-a")
		require.NoError(t, err)

		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Plots, got.Plots)
		assert.Equal(t, want.Barn, got.Barn)
		assert.Equal(t, want.Inventory, got.Inventory)
		assert.Equal(t, want.Treasury, got.Treasury)
		assert.Equal(t, want.Upgrades, got.Upgrades)
		assert.Equal(t, want.TickCount, got.TickCount)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("save overwrites", func(t *testing.T) {
		repo := newRepo(t)
		s := SampleFarm("farm-b", now)
		require.NoError(t, repo.SaveFarm(ctx, s))

		s.Treasury = 7
		s.Inventory = domain.Inventory{}
		require.NoError(t, repo.SaveFarm(ctx, s))

		got, err := repo.LoadFarm(ctx, "farm-b")
		require.NoError(t, err)
		assert.Equal(t, 7, got.Treasury)
		assert.Empty(t, got.Inventory)
	})

	t.Run("stored copy is independent of the caller", func(t *testing.T) {
		repo := newRepo(t)
		s := SampleFarm("farm-c", now)
		require.NoError(t, repo.SaveFarm(ctx, s))

		s.Plots[0].Progress = 99
		s.Inventory.Add("wheat", 100)

		got, err := repo.LoadFarm(ctx, "farm-c")
		require.NoError(t, err)
		assert.Equal(t, 37.5, got.Plots[0].Progress)
		assert.Equal(t, 4, got.Inventory.Count("wheat"))
	})

	t.Run("missing farm is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.LoadFarm(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.ErrorIs(t, repo.DeleteFarm(ctx, "nope"), domain.ErrNotFound)
	})

	t.Run("delete removes the farm", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveFarm(ctx, SampleFarm("farm-d", now)))

		require.NoError(t, repo.DeleteFarm(ctx, "farm-d"))
		_, err := repo.LoadFarm(ctx, "farm-d")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list orders by most recent update", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveFarm(ctx, SampleFarm("old", now.Add(-time.Hour))))
		require.NoError(t, repo.SaveFarm(ctx, SampleFarm("new", now)))
		require.NoError(t, repo.SaveFarm(ctx, SampleFarm("mid", now.Add(-time.Minute))))

		ids, err := repo.ListFarmIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"new", "mid", "old"}, ids)
	})

	t.Run("rejects state without id", func(t *testing.T) {
		repo := newRepo(t)
		assert.ErrorIs(t, repo.SaveFarm(ctx, &domain.FarmState{}), domain.ErrInvalidInput)
		assert.ErrorIs(t, repo.SaveFarm(ctx, nil), domain.ErrInvalidInput)
	})
}
