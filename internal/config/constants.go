package config

import "time"

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

// Defaults
const (
	DefaultPort              = "8080"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultServiceName       = "farmstead"
	DefaultVersion           = "dev"
	DefaultDBName            = "farmstead"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultStorageDriver     = StorageDriverPostgres
	DefaultSQLitePath        = "data/farmstead.db"
	DefaultTickInterval      = 250 * time.Millisecond
	DefaultDifficulty        = "normal"
	DefaultSessionCacheSize  = 1024
	DefaultSessionIdleTTL    = 30 * time.Minute
	DefaultAutosaveInterval  = time.Minute
	DefaultWorkerCount       = 4
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultRequestSizeLimit  = 1 << 20

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)
