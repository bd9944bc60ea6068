package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgInvalidIndex          = "Invalid %s index"
	ErrMsgInvalidPayload        = "Invalid payload JSON"
	ErrMsgSaveFailed            = "Failed to save sessions"
	ErrMsgListFarmsFailed       = "Failed to list stored farms"
)

// Path parameters
const (
	ParamFarmID    = "id"
	ParamPlotIndex = "plot"
	ParamSlotIndex = "slot"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode %s request"
	LogMsgRequestDecoded  = "%s request decoded"
	LogMsgActionFailed    = "Farm action failed"
	LogMsgInternalError   = "Farm request failed with internal error"
	LogMsgFarmCreated     = "Farm created"
	LogMsgFarmDeleted     = "Farm deleted"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgManualSave      = "Manual save completed"
	LogMsgManualBroadcast = "Manual stream event broadcast"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
)

// snapshotBufferSize fits a default farm snapshot without regrowing
const snapshotBufferSize = 4096
