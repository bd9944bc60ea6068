package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 64

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10

	// MaxMissedEvents is how many consecutive events a client may miss
	// before it is disconnected
	MaxMissedEvents = 32
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second
)

// WebSocket connection settings
const (
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 512
	wsBufferSize     = 1024
)

// Event types for SSE
const (
	// EventTypeConnected is the first event a client receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// TypesQueryParam selects event types, comma separated
const TypesQueryParam = "types"

// Log messages
const (
	LogMsgClientConnected    = "Event stream client connected"
	LogMsgClientDisconnected = "Event stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting farm event"
	LogMsgEventDropped       = "Broadcast buffer full, dropping farm event"
	LogMsgSlowClientDropped  = "Disconnecting stream client that stopped reading"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgUpgradeFailed      = "WebSocket upgrade failed"
	LogMsgSubscriberReady    = "Event stream subscriber registered"
)
