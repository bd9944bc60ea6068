package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
)

// ============================================================================
// Log Messages - Clock Jobs
// ============================================================================

// Log messages for the tick and autosave jobs
const (
	LogMsgTickBacklog      = "Tick job catching up on missed ticks"
	LogMsgAutosaveStarted  = "Autosave starting"
	LogMsgAutosaveFinished = "Autosave finished"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
