package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
// Kind is one of the domain error kinds, empty for transport errors.
type ErrorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
}

// Snapshots are encoded on every action, so encode buffers are reused
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, snapshotBufferSize))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent
		slog.Error(LogMsgEncodeFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// statusForKind maps a domain error kind to its HTTP status
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInsufficientFunds:
		return http.StatusPaymentRequired
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindInvalidPlotState,
		domain.KindNotReady,
		domain.KindMissingFeed,
		domain.KindAlreadyOwned,
		domain.KindCapacityMaxed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError converts a service error into a typed JSON error.
// Domain errors carry their own message; anything else is hidden behind a generic one.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	kind := domain.KindOf(err)
	status := statusForKind(kind)

	if kind == domain.KindInternal {
		log.Error(LogMsgInternalError, "operation", opName, "error", err)
		respondJSON(w, status, ErrorResponse{Error: ErrMsgGenericServerError, Kind: kind})
		return
	}

	log.Info(LogMsgActionFailed, "operation", opName, "kind", kind, "error", err)
	respondJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
}
