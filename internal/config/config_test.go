package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, DefaultServiceName, cfg.ServiceName)
		assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
		assert.True(t, cfg.UsesPostgres())
		assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
		assert.Equal(t, "normal", cfg.DefaultDifficulty)
		assert.Empty(t, cfg.CatalogPath)
		assert.Equal(t, DefaultSessionCacheSize, cfg.SessionCacheSize)
		assert.Equal(t, DefaultAutosaveInterval, cfg.AutosaveInterval)
		assert.Equal(t, int64(DefaultRequestSizeLimit), cfg.RequestSizeLimit)
		assert.Equal(t, DefaultEventMaxRetries, cfg.EventMaxRetries)
		assert.Equal(t, DefaultEventDeadLetterPath, cfg.EventDeadLetterPath)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("STORAGE_DRIVER", "SQLite")
		t.Setenv("SQLITE_PATH", "/var/lib/farmstead/farms.db")
		t.Setenv("TICK_INTERVAL", "200ms")
		t.Setenv("DEFAULT_DIFFICULTY", "Hard")
		t.Setenv("CATALOG_PATH", "configs/balance.yaml")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "custom-api-key", cfg.APIKey)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, StorageDriverSQLite, cfg.StorageDriver)
		assert.False(t, cfg.UsesPostgres())
		assert.Equal(t, "/var/lib/farmstead/farms.db", cfg.SQLitePath)
		assert.Equal(t, 200*time.Millisecond, cfg.TickInterval)
		assert.Equal(t, "hard", cfg.DefaultDifficulty)
		assert.Equal(t, "configs/balance.yaml", cfg.CatalogPath)
	})

	t.Run("missing API_KEY", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "API_KEY")
		assert.Contains(t, err.Error(), "must be set")
	})

	t.Run("non-numeric PORT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("PORT", "not-a-number")

		cfg, err := Load()

		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid PORT")
	})

	t.Run("PORT range", func(t *testing.T) {
		tests := []struct {
			port    string
			wantErr bool
		}{
			{"0", true},
			{"-1", true},
			{"1", false},
			{"65535", false},
			{"65536", true},
			{"8080.5", true},
			{"", true},
		}
		for _, tt := range tests {
			t.Run(tt.port, func(t *testing.T) {
				clearEnvVars(t)
				t.Setenv("API_KEY", "test-key")
				t.Setenv("PORT", tt.port)

				_, err := Load()
				if tt.wantErr {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestLoad_StorageDrivers(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{"postgres", StorageDriverPostgres, false},
		{"sqlite", StorageDriverSQLite, false},
		{"MEMORY", StorageDriverMemory, false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("API_KEY", "test-key")
			t.Setenv("STORAGE_DRIVER", tt.driver)

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "StorageDriver")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.StorageDriver)
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnvVars(t)
	// registers cleanup for the values godotenv sets
	for _, key := range []string{"API_KEY", "DEFAULT_DIFFICULTY", "WORKER_COUNT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	dir := t.TempDir()
	env := "API_KEY=from-dotenv\nDEFAULT_DIFFICULTY=easy\nWORKER_COUNT=8\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Chdir(dir)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIKey)
	assert.Equal(t, "easy", cfg.DefaultDifficulty)
	assert.Equal(t, 8, cfg.WorkerCount)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "from-env")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("API_KEY=from-dotenv\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "farmer",
		DBPassword: "p@ss:word",
		DBHost:     "db.example.com",
		DBPort:     "5433",
		DBName:     "farmstead",
	}

	assert.Equal(t, "postgres://farmer:p@ss:word@db.example.com:5433/farmstead?sslmode=disable",
		cfg.GetDBConnString())
}

func TestLoad_DockerCompose(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "docker-key")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postgres")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Contains(t, cfg.GetDBConnString(), "postgres://postgres:postgres@db:5432/farmstead")
}

// clearEnvVars unsets every variable Load reads
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR",
		"SERVICE_NAME", "VERSION", "ENVIRONMENT",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME",
		"STORAGE_DRIVER", "SQLITE_PATH", "TICK_INTERVAL", "DEFAULT_DIFFICULTY",
		"CATALOG_PATH", "SESSION_CACHE_SIZE", "SESSION_IDLE_TTL", "AUTOSAVE_INTERVAL",
		"WORKER_COUNT", "SHUTDOWN_TIMEOUT", "REQUEST_SIZE_LIMIT", "ENV_SCHEMA_VERSION",
		"TRUSTED_PROXIES", "EVENT_MAX_RETRIES", "EVENT_RETRY_DELAY", "EVENT_DEADLETTER_PATH",
	}

	for _, key := range envVars {
		os.Unsetenv(key)
	}
}
