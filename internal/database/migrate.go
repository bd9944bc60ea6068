package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	goosedb "github.com/pressly/goose/v3/database"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

var dialects = map[string]struct {
	goose goosedb.Dialect
	dir   string
}{
	DialectPostgres: {goosedb.DialectPostgres, "migrations/postgres"},
	DialectSQLite:   {goosedb.DialectSQLite3, "migrations/sqlite"},
}

// Migrate brings the schema for dialect up to the latest embedded version
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	d, ok := dialects[dialect]
	if !ok {
		return fmt.Errorf("%s: %q", ErrMsgUnknownDialect, dialect)
	}

	sub, err := fs.Sub(migrationFS, d.dir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	provider, err := goose.NewProvider(d.goose, db, sub)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	log := slog.Default()
	if len(results) == 0 {
		log.Info(LogMsgMigrationsUpToDate, "dialect", dialect)
	}
	for _, r := range results {
		log.Info(LogMsgMigrationApplied,
			"dialect", dialect,
			"version", r.Source.Version,
			"duration", r.Duration)
	}
	return nil
}

// MigratePool runs the postgres migrations through a database/sql view of pool
func MigratePool(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Migrate(ctx, db, DialectPostgres)
}
