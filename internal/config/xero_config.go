package config

import (
	"strings"
	"time"
)

const defaultXeroScopes = "openid profile email accounting.transactions accounting.contacts accounting.settings.read offline_access"

type Xero struct{}

var _ XeroConfig = Xero{}

func (Xero) GetXeroClientID() string {
	return GetEnv("XERO_CLIENT_ID", "")
}

func (Xero) GetXeroClientSecret() string {
	return GetEnv("XERO_CLIENT_SECRET", "")
}

func (Xero) GetXeroRedirectURI() string {
	return GetEnv("XERO_REDIRECT_URI", "http://localhost:3000/xero/callback")
}

func (Xero) GetXeroScopes() []string {
	return strings.Fields(GetEnv("XERO_SCOPES", defaultXeroScopes))
}

func (Xero) GetXeroAuthURL() string {
	return "https://login.xero.com/identity/connect/authorize"
}

func (Xero) GetXeroTokenURL() string {
	return "https://identity.xero.com/connect/token"
}

func (Xero) GetXeroRevocationURL() string {
	return "https://identity.xero.com/connect/revocation"
}

func (Xero) GetXeroConnectionsURL() string {
	return "https://api.xero.com/connections"
}

func (Xero) GetXeroAPIBaseURL() string {
	return "https://api.xero.com/api.xro/2.0"
}

func (Xero) GetXeroIssuer() string {
	return "https://identity.xero.com"
}

func (Xero) GetXeroJWKSURL() string {
	return "https://identity.xero.com/.well-known/openid-configuration/jwks"
}

// GetTokenExpiryMargin is how long before expiry an access token is treated as expired.
func (Xero) GetTokenExpiryMargin() time.Duration {
	return 60 * time.Second
}

func (Xero) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}
