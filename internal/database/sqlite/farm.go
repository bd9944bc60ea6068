// Package sqlite stores farm sessions in a single-file sqlite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/repository"
)

const (
	upsertFarmSQL = `
INSERT INTO farms (farm_id, difficulty, treasury, tick_count, state, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (farm_id) DO UPDATE SET
    difficulty = excluded.difficulty,
    treasury   = excluded.treasury,
    tick_count = excluded.tick_count,
    state      = excluded.state,
    updated_at = excluded.updated_at`

	selectFarmSQL  = `SELECT state FROM farms WHERE farm_id = ?`
	deleteFarmSQL  = `DELETE FROM farms WHERE farm_id = ?`
	listFarmIDsSQL = `SELECT farm_id FROM farms ORDER BY updated_at DESC, farm_id`
)

// Error Messages
const (
	ErrMsgFailedToEncodeFarm = "failed to encode farm state"
	ErrMsgFailedToDecodeFarm = "failed to decode farm state"
	ErrMsgFailedToSaveFarm   = "failed to save farm"
	ErrMsgFailedToLoadFarm   = "failed to load farm"
	ErrMsgFailedToDeleteFarm = "failed to delete farm"
	ErrMsgFailedToListFarms  = "failed to list farms"
)

// FarmRepository stores farm sessions as JSON text rows
type FarmRepository struct {
	db *sql.DB
}

var _ repository.Farm = (*FarmRepository)(nil)

// NewFarmRepository creates a new FarmRepository. The schema must already be migrated.
func NewFarmRepository(db *sql.DB) *FarmRepository {
	return &FarmRepository{db: db}
}

// SaveFarm inserts or replaces the stored state
func (r *FarmRepository) SaveFarm(ctx context.Context, state *domain.FarmState) error {
	if state == nil || state.ID == "" {
		return fmt.Errorf("%w: farm state without id", domain.ErrInvalidInput)
	}
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeFarm, err)
	}

	_, err = r.db.ExecContext(ctx, upsertFarmSQL,
		state.ID,
		string(state.Difficulty),
		state.Treasury,
		state.TickCount,
		string(doc),
		state.CreatedAt.UnixNano(),
		state.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToSaveFarm, state.ID, err)
	}
	return nil
}

// LoadFarm reads and decodes a stored farm
func (r *FarmRepository) LoadFarm(ctx context.Context, id string) (*domain.FarmState, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, selectFarmSQL, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToLoadFarm, id, err)
	}

	var state domain.FarmState
	if err := json.Unmarshal([]byte(doc), &state); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeFarm, err)
	}
	if state.Inventory == nil {
		state.Inventory = domain.Inventory{}
	}
	state.Inventory.Normalize()
	return &state, nil
}

// DeleteFarm removes a stored farm
func (r *FarmRepository) DeleteFarm(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteFarmSQL, id)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToDeleteFarm, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToDeleteFarm, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return nil
}

// ListFarmIDs returns stored farm ids, most recently updated first
func (r *FarmRepository) ListFarmIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, listFarmIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListFarms, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListFarms, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListFarms, err)
	}
	return ids, nil
}

// Ping implements repository.Pinger
func (r *FarmRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
