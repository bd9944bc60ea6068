package bootstrap

const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

// Log files are named farmstead_<timestamp>.log and the newest
// LogFileRetentionCount+1 are kept.
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "farmstead_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 9
)

// Startup
const (
	LogMsgLoggingInitialized             = "Logging initialized"
	LogMsgStartingFarmstead              = "Starting Farmstead"
	LogMsgConfigurationLoaded            = "Configuration loaded"
	LogMsgCatalogLoaded                  = "Catalog loaded"
	LogMsgStorageInitialized             = "Farm storage initialized"
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgFailedCreateLogsDir            = "failed to create logs directory"
	LogMsgFailedOpenLogFile              = "failed to open log file"
	LogMsgFailedDeleteOldLog             = "Failed to delete old log file"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"

	ErrMsgFailedLoadCatalog     = "failed to load catalog"
	ErrMsgFailedConnectStorage  = "failed to connect farm storage"
	ErrMsgFailedMigrateStorage  = "failed to migrate farm storage"
	ErrMsgUnknownStorageDriver  = "unknown storage driver"
	ErrMsgFailedRegisterMetrics = "failed to register metrics collector"
)

// Shutdown, in the order GracefulShutdown runs
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgStoppingClock              = "Stopping clock..."
	LogMsgSavingSessions             = "Saving sessions..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgStorageClosed              = "Farm storage closed"
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgSessionShutdownFailed      = "Session shutdown failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
