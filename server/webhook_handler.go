package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/pos-ledger-sync/reconcile"
	"github.com/jrsteele09/pos-ledger-sync/square"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxWebhookBody = 1 << 20

// SquareWebhookHandler acknowledges every well-formed delivery with 200, including failed
// syncs. Sync failures are logged here and nowhere else.
func (s *Server) SquareWebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			writeJSONError(w, "invalid_request", "unreadable body", http.StatusBadRequest)
			return
		}

		if key := s.config.GetSquareWebhookSignatureKey(); key != "" {
			if !square.VerifyWebhookSignature(key, s.webhookURL(r), body, r.Header.Get(square.SignatureHeader)) {
				log.Ctx(ctx).Warn().Msg("Rejected webhook with invalid signature")
				writeJSONError(w, "invalid_signature", "signature mismatch", http.StatusUnauthorized)
				return
			}
		}

		var event square.Event
		if err := json.Unmarshal(body, &event); err != nil {
			writeJSONError(w, "invalid_request", "body must be a JSON event", http.StatusBadRequest)
			return
		}

		logOutcome(log.Ctx(ctx), s.events.HandleEvent(ctx, event))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// webhookURL is the notification URL the signature was computed over.
func (s *Server) webhookURL(r *http.Request) string {
	if u := s.config.GetSquareWebhookURL(); u != "" {
		return u
	}
	return getScheme(r) + "://" + r.Host + r.URL.RequestURI()
}

func logOutcome(logger *zerolog.Logger, outcome reconcile.Outcome) {
	switch {
	case outcome.Failed():
		logger.Error().Err(outcome.Err).Object("outcome", outcome).Msg("Ledger sync failed")
	case outcome.Action == reconcile.ActionIgnored:
		logger.Debug().Object("outcome", outcome).Msg("Ignored webhook event")
	default:
		logger.Info().Object("outcome", outcome).Msg("Webhook event handled")
	}
}
