package postgres

// Error Messages
const (
	ErrMsgFailedToEncodeFarm = "failed to encode farm state"
	ErrMsgFailedToDecodeFarm = "failed to decode farm state"
	ErrMsgFailedToSaveFarm   = "failed to save farm"
	ErrMsgFailedToLoadFarm   = "failed to load farm"
	ErrMsgFailedToDeleteFarm = "failed to delete farm"
	ErrMsgFailedToListFarms  = "failed to list farms"
)
