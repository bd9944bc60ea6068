package sse

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/osse101/Farmstead_Go/internal/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  wsBufferSize,
	WriteBufferSize: wsBufferSize,
	// API key auth already ran; browsers on other origins are allowed
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketHandler streams the same feed as Handler, one JSON frame per event.
// The stream is one-way; anything the client sends is discarded.
func WebSocketHandler(hub *Hub, farmID FarmIDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farm := farmID(r)
		eventTypes := eventTypesFrom(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.Close()

		client := hub.Register(farm, eventTypes)
		metrics.StreamClients.WithLabelValues(metrics.TransportWebSocket).Inc()
		slog.Info(LogMsgClientConnected,
			"transport", metrics.TransportWebSocket,
			"client_id", client.ID,
			"farm_id", farm,
			"filters", eventTypes)

		defer func() {
			hub.Unregister(client.ID)
			metrics.StreamClients.WithLabelValues(metrics.TransportWebSocket).Dec()
			slog.Info(LogMsgClientDisconnected,
				"transport", metrics.TransportWebSocket,
				"client_id", client.ID)
		}()

		closed := make(chan struct{})
		go readPump(conn, closed)

		writePump(conn, client, closed, Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			FarmID:    farm,
			Timestamp: time.Now().Unix(),
			Payload:   ConnectedPayload{ClientID: client.ID, FarmID: farm, Filters: eventTypes},
		})
	}
}

// readPump keeps control frames flowing and notices when the peer goes away
func readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				slog.Debug(LogMsgWriteError, "error", err)
			}
			return
		}
	}
}

func writePump(conn *websocket.Conn, client *Client, closed <-chan struct{}, first Event) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	write := func(event Event) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
		if err := conn.WriteJSON(event); err != nil {
			slog.Warn(LogMsgWriteError, "transport", metrics.TransportWebSocket, "error", err)
			return false
		}
		return true
	}

	if !write(first) {
		return
	}
	for {
		select {
		case <-closed:
			return

		case event, ok := <-client.EventChannel:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if !write(event) {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
