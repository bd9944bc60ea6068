package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// MemoryFarm keeps farms in process memory. Used by tests and the memory storage driver.
type MemoryFarm struct {
	mu    sync.RWMutex
	farms map[string]*domain.FarmState
}

// NewMemoryFarm creates an empty in-memory store
func NewMemoryFarm() *MemoryFarm {
	return &MemoryFarm{farms: make(map[string]*domain.FarmState)}
}

// SaveFarm stores a deep copy of state
func (m *MemoryFarm) SaveFarm(ctx context.Context, state *domain.FarmState) error {
	if state == nil || state.ID == "" {
		return fmt.Errorf("%w: farm state without id", domain.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.farms[state.ID] = state.Clone()
	return nil
}

// LoadFarm returns a deep copy of the stored state
func (m *MemoryFarm) LoadFarm(ctx context.Context, id string) (*domain.FarmState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.farms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return state.Clone(), nil
}

// DeleteFarm removes a stored farm
func (m *MemoryFarm) DeleteFarm(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.farms[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	delete(m.farms, id)
	return nil
}

// ListFarmIDs returns every stored id, most recently updated first
func (m *MemoryFarm) ListFarmIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.farms))
	for id := range m.farms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := m.farms[ids[i]], m.farms[ids[j]]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return ids[i] < ids[j]
	})
	return ids, nil
}

// Ping implements Pinger
func (m *MemoryFarm) Ping(ctx context.Context) error {
	return nil
}
