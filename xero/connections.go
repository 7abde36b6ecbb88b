package xero

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/pkg/errors"
)

const authEventClaim = "authentication_event_id"

// AuthEventID reads the authentication_event_id claim from an access token without
// verifying it. Empty when the token is not a JWT or lacks the claim.
func AuthEventID(accessToken string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return ""
	}
	id, _ := claims[authEventClaim].(string)
	return id
}

// ListConnections lists the tenants the access token can reach. It authenticates with the
// token passed in rather than the stored one, so it can run before a tenant is saved.
func (c *Client) ListConnections(ctx context.Context, accessToken string) ([]Connection, error) {
	endpoint := c.connectionsURL
	if eventID := AuthEventID(accessToken); eventID != "" {
		endpoint += "?" + url.Values{"authEventId": []string{eventID}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Client.ListConnections NewRequest")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "Client.ListConnections Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, apperrors.NewUpstreamError(serviceName, resp.StatusCode, body)
	}

	var connections []Connection
	if err := json.NewDecoder(resp.Body).Decode(&connections); err != nil {
		return nil, errors.Wrap(err, "Client.ListConnections Decode")
	}
	return connections, nil
}

// FirstTenantID returns the tenant of the first connection, or ErrNoTenant.
func FirstTenantID(connections []Connection) (string, error) {
	for _, conn := range connections {
		if conn.TenantID != "" {
			return conn.TenantID, nil
		}
	}
	return "", apperrors.ErrNoTenant
}
