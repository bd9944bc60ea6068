package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/Farmstead_Go/internal/metrics"
)

// FarmIDFunc extracts the farm a stream follows from the request
type FarmIDFunc func(r *http.Request) string

func eventTypesFrom(r *http.Request) []string {
	filterParam := r.URL.Query().Get(TypesQueryParam)
	if filterParam == "" {
		return nil
	}
	return strings.Split(filterParam, ",")
}

// Handler returns an HTTP handler for SSE connections
func Handler(hub *Hub, farmID FarmIDFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Check for flusher support
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		farm := farmID(r)
		eventTypes := eventTypesFrom(r)

		client := hub.Register(farm, eventTypes)
		metrics.StreamClients.WithLabelValues(metrics.TransportSSE).Inc()
		slog.Info(LogMsgClientConnected,
			"transport", metrics.TransportSSE,
			"client_id", client.ID,
			"farm_id", farm,
			"filters", eventTypes)

		defer func() {
			hub.Unregister(client.ID)
			metrics.StreamClients.WithLabelValues(metrics.TransportSSE).Dec()
			slog.Info(LogMsgClientDisconnected,
				"transport", metrics.TransportSSE,
				"client_id", client.ID)
		}()

		connectEvent := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			FarmID:    farm,
			Timestamp: time.Now().Unix(),
			Payload:   ConnectedPayload{ClientID: client.ID, FarmID: farm, Filters: eventTypes},
		}
		if msg, err := FormatSSEMessage(connectEvent); err == nil {
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub is shutting down
					return
				}

				msg, err := FormatSSEMessage(event)
				if err != nil {
					slog.Error(LogMsgWriteError, "error", err)
					continue
				}

				if _, err := w.Write(msg); err != nil {
					slog.Warn(LogMsgWriteError, "error", err)
					return
				}
				flusher.Flush()

			case <-ticker.C:
				keepalive := Event{
					Type:      EventTypeKeepalive,
					Timestamp: time.Now().Unix(),
				}
				msg, _ := FormatSSEMessage(keepalive)
				if _, err := w.Write(msg); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
