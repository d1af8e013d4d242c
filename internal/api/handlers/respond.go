package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dverano/tasklist-be/internal/apperror"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps an error to its HTTP status and {error} body. Anything
// that is not an *AppError is treated as an opaque server fault so storage
// and infra details never leak to clients.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternal("server error", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		// Replace the message so internals stay internal
		appErr = apperror.NewInternal("server error", nil)
	}
	respondJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
