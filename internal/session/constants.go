package session

import "time"

// Defaults
const (
	DefaultCacheSize = 1024
	DefaultIdleTTL   = 30 * time.Minute

	// MaxAdvanceTicks bounds a single manual advance (about seven hours at 4 ticks/s)
	MaxAdvanceTicks = 100_000
)

// Log messages
const (
	LogMsgSessionCreated   = "Farm session created"
	LogMsgSessionLoaded    = "Farm session loaded from storage"
	LogMsgSessionRevived   = "Farm session revived before eviction save"
	LogMsgSessionEvicted   = "Farm session evicted"
	LogMsgSessionDeleted   = "Farm session deleted"
	LogMsgSessionSaveFail  = "Failed to save farm session"
	LogMsgPublishFailed    = "Failed to publish farm event"
	LogMsgTickAllCancelled = "Tick pass cancelled"
	LogMsgShutdownSaving   = "Saving farm sessions before shutdown"
)

// Error details
const (
	ErrMsgAdvanceRangeFmt = "ticks must be between 1 and %d, got %d"
	ErrMsgDifficultyFmt   = "unknown difficulty %q"
)
