package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	portEnvVar   = "PORT"
	appNameVar   = "APP_NAME"
	folderEnvVar = "FOLDER"
	baseURLVar   = "BASE_URL"
)

const (
	TokenStoreFile  = "file"
	TokenStoreRedis = "redis"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "POS Ledger Sync")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	return GetEnv("ENV", "DEV")
}

// GetBaseURL returns the public base URL of this service (e.g., "https://sync.example.com")
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:3000")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv("LOG_LEVEL", "info")
}

// GetTokenStore selects the token persistence backend: "file" or "redis".
func (EnvVars) GetTokenStore() string {
	return GetEnv("TOKEN_STORE", TokenStoreFile)
}

func (e EnvVars) GetTokensFile() string {
	return GetEnv("XERO_TOKENS_FILE", filepath.Join(e.GetDataFolder(), "xero_tokens.json"))
}

func (EnvVars) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (EnvVars) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (EnvVars) GetRedisDB() int {
	db, err := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	if err != nil {
		return 0
	}
	return db
}

func (EnvVars) GetRedisPrefix() string {
	return GetEnv("REDIS_PREFIX", "posledger")
}

func (EnvVars) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "")
}

// GetAdminKeyHash returns the bcrypt hash of the key guarding the admin ledger endpoints.
func (EnvVars) GetAdminKeyHash() string {
	return GetEnv("ADMIN_KEY_HASH", "")
}

func (EnvVars) GetSlackBotToken() string {
	return GetEnv("SLACK_BOT_TOKEN", "")
}

func (EnvVars) GetSlackChannelID() string {
	return GetEnv("SLACK_CHANNEL_ID", "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
