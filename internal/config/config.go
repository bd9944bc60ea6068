package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string // optional; also write logs to a rotating file set here
	Environment string
	ServiceName string `validate:"required"`
	Version     string
	APIKey      string `validate:"required"` // API key for authentication

	// TrustedProxies may set X-Forwarded-For; addresses or CIDR prefixes
	TrustedProxies []string `validate:"dive,ip|cidr"`

	// Database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// Storage
	StorageDriver string `validate:"oneof=postgres sqlite memory"`
	SQLitePath    string

	// Simulation
	TickInterval      time.Duration `validate:"min=1ms"`
	DefaultDifficulty string        `validate:"oneof=easy normal hard"`
	CatalogPath       string        // optional YAML balancing file

	// Sessions and workers
	SessionCacheSize int           `validate:"min=1"`
	SessionIdleTTL   time.Duration `validate:"min=1s"`
	AutosaveInterval time.Duration `validate:"min=1s"`
	WorkerCount      int           `validate:"min=1,max=64"`
	ShutdownTimeout  time.Duration
	RequestSizeLimit int64 `validate:"min=1"`

	// Event publishing
	EventMaxRetries     int           `validate:"min=0,max=20"`
	EventRetryDelay     time.Duration `validate:"min=0"`
	EventDeadLetterPath string
}

var validate = validator.New()

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", ""),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", DefaultDBName),
		DBMaxConns: getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),

		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DefaultStorageDriver)),
		SQLitePath:    getEnv("SQLITE_PATH", DefaultSQLitePath),

		TickInterval:      getEnvAsDuration("TICK_INTERVAL", DefaultTickInterval),
		DefaultDifficulty: strings.ToLower(getEnv("DEFAULT_DIFFICULTY", DefaultDifficulty)),
		CatalogPath:       getEnv("CATALOG_PATH", ""),

		SessionCacheSize: getEnvAsInt("SESSION_CACHE_SIZE", DefaultSessionCacheSize),
		SessionIdleTTL:   getEnvAsDuration("SESSION_IDLE_TTL", DefaultSessionIdleTTL),
		AutosaveInterval: getEnvAsDuration("AUTOSAVE_INTERVAL", DefaultAutosaveInterval),
		WorkerCount:      getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		RequestSizeLimit: int64(getEnvAsInt("REQUEST_SIZE_LIMIT", DefaultRequestSizeLimit)),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
	}

	portStr := getEnv("PORT", DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// UsesPostgres reports whether farms are persisted in PostgreSQL
func (c *Config) UsesPostgres() bool {
	return c.StorageDriver == StorageDriverPostgres
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer environment variable, falling back on missing or bad input
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration parses a duration such as "250ms" or "5m"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
