package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

// MsgInternalError is the only detail a caller sees for an unexpected failure.
const MsgInternalError = "An internal server error occurred"

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithData(w http.ResponseWriter, statusCode int, data any) {
	respondWithJSON(w, statusCode, Envelope{Success: true, Data: data})
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, Envelope{Success: false, Message: message})
}

// respondWithAppError maps err to a status. Anything that is not a client
// error is logged and reported generically.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok || (appErr.HTTPStatus() >= http.StatusInternalServerError && appErr.Type != apperrors.ErrorTypeNotImplemented) {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		respondWithError(w, http.StatusInternalServerError, MsgInternalError)
		return
	}
	respondWithError(w, appErr.HTTPStatus(), appErr.Message)
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid " + name)
	}
	return id, nil
}

// NotImplemented answers endpoints that exist in the route table but have no
// backing operation.
func NotImplemented(w http.ResponseWriter, r *http.Request) {
	respondWithAppError(w, r, apperrors.NewNotImplementedError("not implemented"))
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
