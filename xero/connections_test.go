package xero_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/jrsteele09/pos-ledger-sync/xero"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestAuthEventID(t *testing.T) {
	require.Equal(t, "evt-1", xero.AuthEventID(signedToken(t, jwt.MapClaims{"authentication_event_id": "evt-1"})))
	require.Empty(t, xero.AuthEventID(signedToken(t, jwt.MapClaims{"sub": "x"})))
	require.Empty(t, xero.AuthEventID("not-a-jwt"))
}

func TestListConnections(t *testing.T) {
	accessToken := signedToken(t, jwt.MapClaims{"authentication_event_id": "evt-1"})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer "+accessToken, r.Header.Get("Authorization"))
		require.Equal(t, "evt-1", r.URL.Query().Get("authEventId"))
		writeJSON(w, []xero.Connection{
			{ID: "conn-1", TenantID: "tenant-1", TenantType: "ORGANISATION", TenantName: "Studio"},
			{ID: "conn-2", TenantID: "tenant-2", TenantType: "ORGANISATION"},
		})
	}))
	t.Cleanup(server.Close)

	c, err := xero.NewClient(staticTokens{}, xero.WithConnectionsURL(server.URL), xero.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	connections, err := c.ListConnections(context.Background(), accessToken)
	require.NoError(t, err)
	require.Len(t, connections, 2)

	tenantID, err := xero.FirstTenantID(connections)
	require.NoError(t, err)
	require.Equal(t, "tenant-1", tenantID)

	_, err = xero.FirstTenantID(nil)
	require.ErrorIs(t, err, apperrors.ErrNoTenant)
}
