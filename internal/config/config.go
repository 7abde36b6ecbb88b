package config

import "time"

type Config interface {
	EnvConfig
	XeroConfig
	SquareConfig
	SyncConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
	GetBaseURL() string
	GetLogLevel() string
	GetTokenStore() string
	GetTokensFile() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisPrefix() string
	GetSessionSecret() string
	GetAdminKeyHash() string
	GetSlackBotToken() string
	GetSlackChannelID() string
}

type XeroConfig interface {
	GetXeroClientID() string
	GetXeroClientSecret() string
	GetXeroRedirectURI() string
	GetXeroScopes() []string
	GetXeroAuthURL() string
	GetXeroTokenURL() string
	GetXeroRevocationURL() string
	GetXeroConnectionsURL() string
	GetXeroAPIBaseURL() string
	GetXeroIssuer() string
	GetXeroJWKSURL() string
	GetTokenExpiryMargin() time.Duration
	GetRequestTimeout() time.Duration
}

type SquareConfig interface {
	GetSquareEnv() string
	GetSquareBaseURL() string
	GetSquareAccessToken() string
	GetSquareLocationID() string
	GetSquareAPIVersion() string
	GetSquareWebhookSignatureKey() string
	GetSquareWebhookURL() string
}

type SyncConfig interface {
	GetAccountCodeRules() []AccountCodeRule
	GetDefaultAccountCode() string
	GetBillableItems() []string
	GetInvoicePrefix() string
}

type mainConfig struct {
	EnvVars
	Xero
	Square
	Sync
}

func New() Config {
	return mainConfig{}
}
