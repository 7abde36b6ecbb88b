package server

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/jrsteele09/pos-ledger-sync/xero"
	"github.com/rs/zerolog/log"
)

// IndexHandler reports that the service is up.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"app":    s.config.GetAppName(),
		})
	}
}

// ConnectHandler starts the consent flow with a fresh random state.
func (s *Server) ConnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := uuid.NewString()
		if err := s.saveOAuthState(w, r, state); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to save oauth state")
			writeJSONError(w, "internal_error", "failed to start authorization", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, s.tokens.AuthCodeURL(state), http.StatusFound)
	}
}

// CallbackHandler completes the consent flow: it checks state, exchanges the code,
// verifies the id_token, discovers the tenant and stores the connection.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		query := r.URL.Query()

		if errorParam := query.Get("error"); errorParam != "" {
			writeJSONError(w, errorParam, query.Get("error_description"), http.StatusBadRequest)
			return
		}

		expected, err := s.popOAuthState(w, r)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("Failed to clear oauth state")
		}
		state := query.Get("state")
		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
			writeJSONError(w, "invalid_state", apperrors.ErrInvalidState.Error(), http.StatusBadRequest)
			return
		}

		code := query.Get("code")
		if code == "" {
			writeJSONError(w, "invalid_request", "missing code", http.StatusBadRequest)
			return
		}

		tok, err := s.tokens.Exchange(ctx, code)
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}

		if rawIDToken, ok := tok.Extra("id_token").(string); ok && rawIDToken != "" && s.idTokens != nil {
			idToken, err := s.idTokens.Verify(ctx, rawIDToken)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("ID token verification failed")
				writeJSONError(w, "invalid_id_token", "id token verification failed", http.StatusUnauthorized)
				return
			}
			log.Ctx(ctx).Info().Str("subject", idToken.Subject).Msg("Ledger consent granted")
		}

		connections, err := s.ledger.ListConnections(ctx, tok.AccessToken)
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		tenantID, err := xero.FirstTenantID(connections)
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}

		record, err := s.tokens.Connect(ctx, tok, tenantID)
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}

		log.Ctx(ctx).Info().Str("tenant_id", record.TenantID).Msg("Ledger connected")
		writeJSON(w, http.StatusOK, map[string]any{
			"connected":    true,
			"tenant_id":    record.TenantID,
			"tokens_saved": true,
		})
	}
}

// StatusHandler reports the stored connection without refreshing it.
func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := s.tokens.Current(r.Context())
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		if record == nil {
			writeJSON(w, http.StatusOK, map[string]any{"connected": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"connected":  true,
			"tenant_id":  record.TenantID,
			"expires_at": record.Expiry().UTC().Format(time.RFC3339),
			"scope":      record.Scope,
		})
	}
}

// DisconnectHandler revokes and forgets the stored connection.
func (s *Server) DisconnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.tokens.Disconnect(r.Context()); err != nil {
			writeLedgerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"connected": false})
	}
}
