package handler

import (
	"net/http"

	"github.com/osse101/Farmstead_Go/internal/sse"
)

// StreamHandler serves live farm events over SSE and WebSocket
type StreamHandler struct {
	svc FarmService
	sse http.HandlerFunc
	ws  http.HandlerFunc
}

// NewStreamHandler creates a stream handler backed by the hub
func NewStreamHandler(svc FarmService, hub *sse.Hub) *StreamHandler {
	return &StreamHandler{
		svc: svc,
		sse: sse.Handler(hub, farmID),
		ws:  sse.WebSocketHandler(hub, farmID),
	}
}

// HandleEvents streams a farm's events as Server-Sent Events
// GET /api/v1/farms/{id}/events?types=crop.ripened,goods.sold
func (h *StreamHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if !h.farmExists(w, r) {
		return
	}
	h.sse(w, r)
}

// HandleWebSocket streams a farm's events over a WebSocket
// GET /api/v1/farms/{id}/ws
func (h *StreamHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !h.farmExists(w, r) {
		return
	}
	h.ws(w, r)
}

// farmExists loads the session so streams are only opened for live farms
func (h *StreamHandler) farmExists(w http.ResponseWriter, r *http.Request) bool {
	if _, err := h.svc.Snapshot(r.Context(), farmID(r)); err != nil {
		respondServiceError(w, r, "stream", err)
		return false
	}
	return true
}
