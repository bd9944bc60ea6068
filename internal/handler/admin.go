package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/osse101/Farmstead_Go/internal/logger"
	"github.com/osse101/Farmstead_Go/internal/sse"
)

// SessionAdmin exposes the session maintenance operations
type SessionAdmin interface {
	SaveAll(ctx context.Context) error
	ActiveCount() int
}

// FarmLister lists the farms held in persistent storage
type FarmLister interface {
	ListFarmIDs(ctx context.Context) ([]string, error)
}

// AdminStatsResponse summarizes live server state
type AdminStatsResponse struct {
	ActiveSessions int `json:"active_sessions"`
	StoredFarms    int `json:"stored_farms"`
	StreamClients  int `json:"stream_clients"`

	// set only when the request names a farm
	FarmID            string `json:"farm_id,omitempty"`
	FarmStreamClients *int   `json:"farm_stream_clients,omitempty"`
}

// AdminBroadcastRequest pushes a manual event to a farm's stream clients
type AdminBroadcastRequest struct {
	FarmID  string          `json:"farm_id" validate:"required,max=64"`
	Type    string          `json:"type" validate:"required,max=64"`
	Payload json.RawMessage `json:"payload"`
}

// AdminHandler handles operator endpoints
type AdminHandler struct {
	sessions SessionAdmin
	farms    FarmLister
	hub      *sse.Hub
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(sessions SessionAdmin, farms FarmLister, hub *sse.Hub) *AdminHandler {
	return &AdminHandler{sessions: sessions, farms: farms, hub: hub}
}

// HandleStats reports cache, storage and stream occupancy
// GET /api/v1/admin/stats[?farm_id=...]
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ids, err := h.farms.ListFarmIDs(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error(ErrMsgListFarmsFailed, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgListFarmsFailed)
		return
	}

	stats := AdminStatsResponse{
		ActiveSessions: h.sessions.ActiveCount(),
		StoredFarms:    len(ids),
		StreamClients:  h.hub.ClientCount(),
	}
	if farmID := GetOptionalQueryParam(r, "farm_id", ""); farmID != "" {
		n := h.hub.FarmClientCount(farmID)
		stats.FarmID = farmID
		stats.FarmStreamClients = &n
	}
	respondJSON(w, http.StatusOK, stats)
}

// HandleSave persists every live session now instead of waiting for autosave
// POST /api/v1/admin/save
func (h *AdminHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	if err := h.sessions.SaveAll(r.Context()); err != nil {
		log.Error(ErrMsgSaveFailed, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgSaveFailed)
		return
	}

	log.Info(LogMsgManualSave, "sessions", h.sessions.ActiveCount())
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "Sessions saved"})
}

// HandleBroadcast broadcasts a manual event to one farm's stream clients
// POST /api/v1/admin/events/broadcast
func (h *AdminHandler) HandleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req AdminBroadcastRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Broadcast"); err != nil {
		return
	}

	var payload interface{}
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidPayload)
			return
		}
	}

	h.hub.Broadcast(req.FarmID, req.Type, payload)
	logger.FromContext(r.Context()).Info(LogMsgManualBroadcast, "farm_id", req.FarmID, "type", req.Type)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Event broadcasted successfully",
		"type":    req.Type,
	})
}
