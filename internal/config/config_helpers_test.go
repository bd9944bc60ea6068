package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	const key = "FARMSTEAD_TEST_VAR"

	ints := map[string]int{
		"8":    8,
		"-3":   -3,
		"0":    0,
		"2.5":  42,
		"ten":  42,
		"":     42,
		" 7 ":  42,
		"0x10": 42,
	}
	for raw, want := range ints {
		t.Run("int "+raw, func(t *testing.T) {
			t.Setenv(key, raw)
			assert.Equal(t, want, getEnvAsInt(key, 42))
		})
	}

	durations := map[string]time.Duration{
		"250ms":   250 * time.Millisecond,
		"1h30m":   90 * time.Minute,
		"45s":     45 * time.Second,
		"750us":   750 * time.Microsecond,
		"250":     time.Minute,
		"soon":    time.Minute,
		"":        time.Minute,
		"-1s":     -time.Second,
		"2h0m0s":  2 * time.Hour,
		"1.5s":    1500 * time.Millisecond,
		"forever": time.Minute,
	}
	for raw, want := range durations {
		t.Run("duration "+raw, func(t *testing.T) {
			t.Setenv(key, raw)
			assert.Equal(t, want, getEnvAsDuration(key, time.Minute))
		})
	}

	t.Run("unset falls back", func(t *testing.T) {
		t.Setenv(key, "")
		os.Unsetenv(key)
		assert.Equal(t, "fallback", getEnv(key, "fallback"))
		assert.Equal(t, 9, getEnvAsInt(key, 9))
		assert.Nil(t, getEnvAsList(key))
	})

	t.Run("set but empty keeps empty string", func(t *testing.T) {
		t.Setenv(key, "")
		assert.Equal(t, "", getEnv(key, "fallback"))
	})

	t.Run("list trims entries", func(t *testing.T) {
		t.Setenv(key, " a ,, b,c ,")
		assert.Equal(t, []string{"a", "b", "c"}, getEnvAsList(key))
	})
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("pool defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})

	t.Run("pool overrides", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 1*time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("unparseable pool values fall back", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "not-a-number")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "invalid")
		t.Setenv("DB_MAX_CONN_LIFETIME", "bad-duration")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 20, cfg.DBMaxConns)
		assert.Equal(t, 5*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 30*time.Minute, cfg.DBMaxConnLifetime)
	})
}

// TestLoad_SimulationConfig covers the clock and session settings
func TestLoad_SimulationConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
		assert.Equal(t, "normal", cfg.DefaultDifficulty)
		assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
		assert.True(t, cfg.UsesPostgres())
		assert.Equal(t, DefaultSessionCacheSize, cfg.SessionCacheSize)
		assert.Equal(t, time.Minute, cfg.AutosaveInterval)
		assert.Equal(t, 4, cfg.WorkerCount)
		assert.Empty(t, cfg.CatalogPath)
		assert.Equal(t, DefaultEventMaxRetries, cfg.EventMaxRetries)
		assert.Equal(t, DefaultEventDeadLetterPath, cfg.EventDeadLetterPath)
		assert.Empty(t, cfg.LogDir)
	})

	t.Run("custom values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("TICK_INTERVAL", "100ms")
		t.Setenv("DEFAULT_DIFFICULTY", "HARD")
		t.Setenv("STORAGE_DRIVER", "sqlite")
		t.Setenv("SQLITE_PATH", "/tmp/farm.db")
		t.Setenv("CATALOG_PATH", "configs/balance.yaml")
		t.Setenv("SESSION_IDLE_TTL", "2m")
		t.Setenv("WORKER_COUNT", "8")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 100*time.Millisecond, cfg.TickInterval)
		assert.Equal(t, "hard", cfg.DefaultDifficulty)
		assert.False(t, cfg.UsesPostgres())
		assert.Equal(t, "/tmp/farm.db", cfg.SQLitePath)
		assert.Equal(t, "configs/balance.yaml", cfg.CatalogPath)
		assert.Equal(t, 2*time.Minute, cfg.SessionIdleTTL)
		assert.Equal(t, 8, cfg.WorkerCount)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		tests := []struct {
			key, value, field string
		}{
			{"STORAGE_DRIVER", "mongodb", "StorageDriver"},
			{"DEFAULT_DIFFICULTY", "nightmare", "DefaultDifficulty"},
			{"WORKER_COUNT", "0", "WorkerCount"},
			{"SESSION_CACHE_SIZE", "0", "SessionCacheSize"},
			{"LOG_FORMAT", "xml", "LogFormat"},
			{"TRUSTED_PROXIES", "10.0.0.1,not-an-ip", "TrustedProxies"},
			{"EVENT_MAX_RETRIES", "50", "EventMaxRetries"},
		}
		for _, tt := range tests {
			t.Run(tt.key, func(t *testing.T) {
				clearEnvVars(t)
				t.Setenv("API_KEY", "test-key")
				t.Setenv(tt.key, tt.value)

				cfg, err := Load()

				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), tt.field)
			})
		}
	})
}

func TestLoad_TrustedProxies(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "test-key")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,192.168.1.2 ")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "192.168.1.2"}, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,fd00::/8")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "fd00::/8"}, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "proxy.internal")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TrustedProxies")
}
