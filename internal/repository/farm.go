package repository

import (
	"context"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// Farm defines the interface for farm session persistence.
// The stored form is the whole FarmState; implementations must not share
// memory with the caller's copy.
type Farm interface {
	SaveFarm(ctx context.Context, state *domain.FarmState) error
	LoadFarm(ctx context.Context, id string) (*domain.FarmState, error)
	DeleteFarm(ctx context.Context, id string) error
	ListFarmIDs(ctx context.Context) ([]string, error)
}

// Pinger is implemented by stores that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}
