package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req PlantRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Plant"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	return decodeAndValidate(r, w, req, actionName, false)
}

// DecodeOptionalRequest behaves like DecodeAndValidateRequest but treats an empty body as a zero-value request
func DecodeOptionalRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	return decodeAndValidate(r, w, req, actionName, true)
}

func decodeAndValidate(r *http.Request, w http.ResponseWriter, req interface{}, actionName string, allowEmpty bool) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			log.Warn(fmt.Sprintf(LogMsgDecodeFailed, actionName), "error", err)
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequest, Kind: domain.KindInvalidInput})
			return err
		}
	}

	log.Debug(fmt.Sprintf(LogMsgRequestDecoded, actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Kind:   domain.KindInvalidInput,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Kind   domain.ErrorKind  `json:"kind"`
	Fields map[string]string `json:"fields"`
}

// GetOptionalQueryParam retrieves an optional query parameter, falling back to defaultValue
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// farmID returns the {id} path parameter
func farmID(r *http.Request) string {
	return chi.URLParam(r, ParamFarmID)
}

// pathIndex parses an integer path parameter such as a plot or barn slot index.
// If ok is false, the HTTP response has already been written.
func pathIndex(r *http.Request, w http.ResponseWriter, param string) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf(ErrMsgInvalidIndex, param),
			Kind:  domain.KindInvalidInput,
		})
		return 0, false
	}
	return idx, true
}

// LogRequestFields logs common request fields in a structured way
func LogRequestFields(log *slog.Logger, keyvals ...interface{}) {
	if len(keyvals)%2 != 0 {
		log.Warn("LogRequestFields called with odd number of arguments")
		return
	}
	log.Debug("Request details", keyvals...)
}
