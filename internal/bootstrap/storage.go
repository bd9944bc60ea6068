package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/Farmstead_Go/internal/config"
	"github.com/osse101/Farmstead_Go/internal/database"
	"github.com/osse101/Farmstead_Go/internal/database/postgres"
	"github.com/osse101/Farmstead_Go/internal/database/sqlite"
	"github.com/osse101/Farmstead_Go/internal/repository"
)

// FarmStore is a farm repository that can also report its health
type FarmStore interface {
	repository.Farm
	repository.Pinger
}

// Storage holds the configured farm store and releases its connections on Close
type Storage struct {
	Farms  FarmStore
	Driver string
	close  func()
}

// Close releases the underlying connections
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
	slog.Info(LogMsgStorageClosed, "driver", s.Driver)
}

// InitializeStorage opens the store selected by cfg.StorageDriver and brings its schema up to date
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var storage *Storage

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectStorage, err)
		}
		if err := database.MigratePool(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStorage, err)
		}
		storage = &Storage{Farms: postgres.NewFarmRepository(pool), close: pool.Close}

	case config.StorageDriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectStorage, err)
		}
		if err := database.Migrate(ctx, db, database.DialectSQLite); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStorage, err)
		}
		storage = &Storage{Farms: sqlite.NewFarmRepository(db), close: func() { _ = db.Close() }}

	case config.StorageDriverMemory:
		storage = &Storage{Farms: repository.NewMemoryFarm()}

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageDriver, cfg.StorageDriver)
	}

	storage.Driver = cfg.StorageDriver
	slog.Info(LogMsgStorageInitialized, "driver", storage.Driver)
	return storage, nil
}
