package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, errorCode, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// writeLedgerError maps a ledger or commerce call failure to a JSON response.
// Upstream rejections keep the upstream status and raw body.
func writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")

	var upstream *apperrors.UpstreamError
	switch {
	case apperrors.Is(err, apperrors.ErrNotConnected):
		writeJSONError(w, "not_connected", "Visit "+RouteXeroConnect+" first", http.StatusBadRequest)
	case apperrors.Is(err, apperrors.ErrNoTenant):
		writeJSONError(w, "no_tenant", err.Error(), http.StatusBadRequest)
	case apperrors.As(err, &upstream):
		writeJSON(w, upstream.StatusCode, map[string]any{
			"error": upstream.StatusCode,
			"body":  upstream.Body,
		})
	case apperrors.Is(err, apperrors.ErrInvalidRequest):
		writeJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
	case apperrors.Is(err, apperrors.ErrNotFound):
		writeJSONError(w, "not_found", err.Error(), http.StatusNotFound)
	default:
		writeJSONError(w, "internal_error", err.Error(), http.StatusInternalServerError)
	}
}
