package token

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	defaultExpiryMargin = 60 * time.Second
	defaultTimeout      = 30 * time.Second
)

// Manager owns the ledger token lifecycle: consent exchange, validity checks, refresh and revocation.
// The load-check-refresh-save sequence runs under a mutex so concurrent webhook deliveries
// cannot both spend the same refresh token.
type Manager struct {
	store         Store
	oauth         *oauth2.Config
	revocationURL string
	margin        time.Duration
	httpClient    *http.Client
	nowFunc       func() time.Time
	mu            sync.Mutex
}

type ManagerOption func(*Manager)

// WithExpiryMargin treats tokens as expired this long before their real expiry.
func WithExpiryMargin(margin time.Duration) ManagerOption {
	return func(m *Manager) {
		m.margin = margin
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithHTTPClient(client *http.Client) ManagerOption {
	return func(m *Manager) {
		m.httpClient = client
	}
}

func WithRevocationURL(revocationURL string) ManagerOption {
	return func(m *Manager) {
		m.revocationURL = revocationURL
	}
}

// NewManager creates a token manager. The oauth2 config must use AuthStyleInHeader
// for providers that expect HTTP Basic client authentication.
func NewManager(store Store, oauthConfig *oauth2.Config, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] token store is required")
	}
	if oauthConfig == nil {
		return nil, errors.New("[NewManager] oauth2 config is required")
	}

	m := &Manager{
		store:      store,
		oauth:      oauthConfig,
		margin:     defaultExpiryMargin,
		httpClient: &http.Client{Timeout: defaultTimeout},
		nowFunc:    time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// ValidToken returns credentials for a ledger call.
//
// No stored record yields ErrNotConnected with empty credentials. A record inside its
// validity window is returned as-is without any network call. Otherwise the refresh token
// is exchanged once; on failure the stored tenant is returned together with ErrRefreshFailed.
func (m *Manager) ValidToken(ctx context.Context) (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, err := m.store.Load(ctx)
	if err != nil {
		return Credentials{}, errors.Wrap(err, "Manager.ValidToken Load")
	}
	if record == nil {
		return Credentials{}, apperrors.ErrNotConnected
	}

	if record.IsValid(m.nowFunc(), m.margin) {
		return record.Credentials(), nil
	}

	log.Info().Str("tenant_id", record.TenantID).Msg("Refreshing ledger access token")
	refreshed, err := m.refresh(ctx, *record)
	if err != nil {
		log.Err(err).Str("tenant_id", record.TenantID).Msg("Failed to refresh ledger access token")
		return Credentials{TenantID: record.TenantID}, fmt.Errorf("%w: %w", apperrors.ErrRefreshFailed, err)
	}
	return refreshed.Credentials(), nil
}

func (m *Manager) refresh(ctx context.Context, old Record) (Record, error) {
	if old.RefreshToken == "" {
		return Record{}, errors.New("no refresh token stored")
	}

	// An empty access token forces the source to hit the token endpoint.
	src := m.oauth.TokenSource(m.clientContext(ctx), &oauth2.Token{RefreshToken: old.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return Record{}, m.tokenEndpointError(err)
	}

	record := NewRecord(tok, old.TenantID, m.nowFunc())
	// oauth2 copies the old refresh token forward when the response has none; the record
	// must hold only what the token endpoint returned.
	if issued, _ := tok.Extra("refresh_token").(string); issued == "" {
		log.Warn().Str("tenant_id", old.TenantID).Msg("Refresh response carried no refresh token")
		record.RefreshToken = ""
	}
	if err := m.store.Save(ctx, record); err != nil {
		return Record{}, errors.Wrap(err, "Manager.refresh Save")
	}
	return record, nil
}

// AuthCodeURL builds the consent redirect for the given state.
func (m *Manager) AuthCodeURL(state string) string {
	return m.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token pair without persisting it.
func (m *Manager) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := m.oauth.Exchange(m.clientContext(ctx), code)
	if err != nil {
		return nil, m.tokenEndpointError(err)
	}
	return tok, nil
}

// Connect stores a freshly exchanged token pair for tenantID, replacing any previous record.
func (m *Manager) Connect(ctx context.Context, tok *oauth2.Token, tenantID string) (Record, error) {
	if tenantID == "" {
		return Record{}, apperrors.ErrNoTenant
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record := NewRecord(tok, tenantID, m.nowFunc())
	if err := m.store.Save(ctx, record); err != nil {
		return Record{}, errors.Wrap(err, "Manager.Connect Save")
	}
	return record, nil
}

// Current returns the stored record without refreshing it. Nil means not connected.
func (m *Manager) Current(ctx context.Context) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Load(ctx)
}

// Disconnect revokes the refresh token (best effort) and removes the stored record.
func (m *Manager) Disconnect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, err := m.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "Manager.Disconnect Load")
	}
	if record == nil {
		return nil
	}

	if m.revocationURL != "" && record.RefreshToken != "" {
		if err := m.revoke(ctx, record.RefreshToken); err != nil {
			log.Err(err).Str("tenant_id", record.TenantID).Msg("Failed to revoke refresh token")
		}
	}

	return m.store.Delete(ctx)
}

func (m *Manager) revoke(ctx context.Context, refreshToken string) error {
	form := url.Values{}
	form.Set("token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.revocationURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "Manager.revoke NewRequest")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(m.oauth.ClientID, m.oauth.ClientSecret)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "Manager.revoke Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return apperrors.NewUpstreamError("identity", resp.StatusCode, body)
	}
	return nil
}

func (m *Manager) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
}

// tokenEndpointError surfaces non-2xx token endpoint answers as UpstreamError.
func (m *Manager) tokenEndpointError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return apperrors.NewUpstreamError("identity", retrieveErr.Response.StatusCode, retrieveErr.Body)
	}
	return err
}
