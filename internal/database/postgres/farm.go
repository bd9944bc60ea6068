package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/repository"
)

const (
	upsertFarmSQL = `
INSERT INTO farms (farm_id, difficulty, treasury, tick_count, state, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (farm_id) DO UPDATE SET
    difficulty = EXCLUDED.difficulty,
    treasury   = EXCLUDED.treasury,
    tick_count = EXCLUDED.tick_count,
    state      = EXCLUDED.state,
    updated_at = EXCLUDED.updated_at`

	selectFarmSQL  = `SELECT state FROM farms WHERE farm_id = $1`
	deleteFarmSQL  = `DELETE FROM farms WHERE farm_id = $1`
	listFarmIDsSQL = `SELECT farm_id FROM farms ORDER BY updated_at DESC, farm_id`
)

// FarmRepository stores farm sessions as JSONB documents in PostgreSQL
type FarmRepository struct {
	db *pgxpool.Pool
}

var _ repository.Farm = (*FarmRepository)(nil)

// NewFarmRepository creates a new FarmRepository
func NewFarmRepository(db *pgxpool.Pool) *FarmRepository {
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

	_, err = r.db.Exec(ctx, upsertFarmSQL,
		state.ID,
		string(state.Difficulty),
		state.Treasury,
		state.TickCount,
		doc,
		state.CreatedAt,
		state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToSaveFarm, state.ID, err)
	}
	return nil
}

// LoadFarm reads and decodes a stored farm
func (r *FarmRepository) LoadFarm(ctx context.Context, id string) (*domain.FarmState, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, selectFarmSQL, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToLoadFarm, id, err)
	}
	return decodeFarm(doc)
}

// DeleteFarm removes a stored farm
func (r *FarmRepository) DeleteFarm(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, deleteFarmSQL, id)
	if err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToDeleteFarm, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return nil
}

// ListFarmIDs returns stored farm ids, most recently updated first
func (r *FarmRepository) ListFarmIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, listFarmIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListFarms, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListFarms, err)
	}
	return ids, nil
}

// Ping implements repository.Pinger
func (r *FarmRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func decodeFarm(doc []byte) (*domain.FarmState, error) {
	var state domain.FarmState
	if err := json.Unmarshal(doc, &state); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeFarm, err)
	}
	if state.Inventory == nil {
		state.Inventory = domain.Inventory{}
	}
	state.Inventory.Normalize()
	return &state, nil
}
