package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// SQLiteBusyTimeoutMs is how long sqlite waits on a locked database before failing
	SQLiteBusyTimeoutMs = 5000
)

// Migration dialects
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// SQLiteDriverName is the database/sql driver registered by modernc.org/sqlite
const SQLiteDriverName = "sqlite"

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToOpenSQLite      = "failed to open sqlite database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgUnknownDialect          = "unknown migration dialect"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgOpenedSQLite                    = "Opened sqlite database"
	LogMsgMigrationApplied                = "Applied migration"
	LogMsgMigrationsUpToDate              = "Database schema is up to date"
)
