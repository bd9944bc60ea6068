package farm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/Farmstead_Go/internal/catalog"
	"github.com/osse101/Farmstead_Go/internal/domain"
)

const maxTestTicks = 10000

func newTestEngine() *Engine {
	return NewEngine(catalog.Default(), 250*time.Millisecond)
}

func newTestState(difficulty domain.Difficulty) *domain.FarmState {
	return NewState("test-farm", difficulty, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
}

// plantCrop tills, waters and plants plot idx
func plantCrop(t *testing.T, e *Engine, s *domain.FarmState, idx int, crop domain.CropID) {
	t.Helper()
	_, err := e.Till(s, idx)
	require.NoError(t, err)
	_, err = e.Water(s, idx)
	require.NoError(t, err)
	_, err = e.Plant(s, idx, crop)
	require.NoError(t, err)
}

// growToRipe ticks one at a time, watering whenever the plot dries, until it ripens.
// It returns the number of ticks spent.
func growToRipe(t *testing.T, e *Engine, s *domain.FarmState, idx int) int {
	t.Helper()
	ticks := 0
	for s.Plots[idx].Stage < domain.StageRipe {
		if s.Plots[idx].Moisture == domain.MoistureDry {
			_, err := e.Water(s, idx)
			require.NoError(t, err)
		}
		e.Tick(s, 1, s.Difficulty)
		ticks++
		require.Less(t, ticks, maxTestTicks, "crop never ripened")
	}
	return ticks
}

// stockFedChicken puts a chicken in slot idx and feeds it
func stockFedChicken(t *testing.T, e *Engine, s *domain.FarmState, idx int) {
	t.Helper()
	_, err := e.BuyAnimal(s, idx, domain.AnimalChicken)
	require.NoError(t, err)
	s.Inventory.Add(domain.CropCorn.Good(), 1)
	_, err = e.Feed(s, idx)
	require.NoError(t, err)
}
