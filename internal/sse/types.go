package sse

// ConnectedPayload is sent once when a client attaches
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	FarmID   string   `json:"farm_id,omitempty"`
	Filters  []string `json:"filters,omitempty"`
}
