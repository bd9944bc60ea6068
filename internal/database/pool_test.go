package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Farmstead_Go/internal/database/dbtest"
	"github.com/osse101/Farmstead_Go/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	terminate := func() {}
	if !testing.Short() {
		testDBConnString, terminate = dbtest.StartPostgres(context.Background())
	}

	code := m.Run()
	terminate()
	os.Exit(code)
}

func migratedPool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	pool, err := NewPool(testDBConnString, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, MigratePool(context.Background(), pool))
	return pool
}

const upsertFarm = `
	INSERT INTO farms (farm_id, difficulty, treasury, tick_count, state)
	VALUES ($1, 'normal', $2, $3, $4::jsonb)
	ON CONFLICT (farm_id) DO UPDATE
	SET treasury = EXCLUDED.treasury, tick_count = EXCLUDED.tick_count,
	    state = EXCLUDED.state, updated_at = NOW()`

// Autosave writes every live farm at once; none of those writes may hold a connection afterwards
func TestPool_ConcurrentFarmWritesReleaseConnections(t *testing.T) {
	pool := migratedPool(t, 10)
	checker := leaktest.NewGoroutineChecker(t)
	ctx := context.Background()

	const farms = 25
	var wg sync.WaitGroup
	errs := make(chan error, farms)
	for i := 0; i < farms; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("pool-farm-%d", n)
			_, err := pool.Exec(ctx, upsertFarm, id, 200-n, n, `{"treasury": 200}`)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())

	var count int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM farms WHERE farm_id LIKE 'pool-farm-%'").Scan(&count))
	assert.Equal(t, farms, count)

	checker.Check(2)
}

func TestPool_MaxConnsEnforced(t *testing.T) {
	const maxConns = 3
	pool := migratedPool(t, maxConns)
	ctx := context.Background()

	held := make([]*pgxpool.Conn, 0, maxConns)
	for i := 0; i < maxConns; i++ {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err)
		held = append(held, conn)
	}
	assert.Equal(t, int32(maxConns), pool.Stat().AcquiredConns())

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err := pool.Acquire(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	for _, conn := range held {
		conn.Release()
	}
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}

// A rejected snapshot must not leak its connection
func TestPool_FailedWriteReleasesConnection(t *testing.T) {
	pool := migratedPool(t, 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := pool.Exec(ctx, upsertFarm, "broken", 0, 0, "not json")
		assert.Error(t, err)
	}
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}

func TestOpenSQLite_ConnectionSettings(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "farm.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, SQLiteBusyTimeoutMs, timeout)
}
