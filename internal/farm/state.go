package farm

import (
	"time"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// NewState builds the starting aggregate for a new session
func NewState(id string, difficulty domain.Difficulty, now time.Time) *domain.FarmState {
	if !difficulty.Valid() {
		difficulty = domain.DifficultyNormal
	}

	plots := make([]domain.Plot, domain.StartingPlots)
	for i := range plots {
		plots[i] = domain.NewPlot(i)
	}
	barn := make([]domain.BarnSlot, domain.StartingBarnSlots)
	for i := range barn {
		barn[i] = domain.NewBarnSlot(i)
	}

	return &domain.FarmState{
		ID:         id,
		Difficulty: difficulty,
		Plots:      plots,
		Barn:       barn,
		Inventory:  domain.Inventory{},
		Treasury:   domain.StartingTreasury,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
