package config

import "strings"

const (
	SquareSandbox    = "sandbox"
	SquareProduction = "production"
)

type Square struct{}

var _ SquareConfig = Square{}

func (Square) GetSquareEnv() string {
	if strings.EqualFold(GetEnv("SQUARE_ENV", SquareSandbox), SquareProduction) {
		return SquareProduction
	}
	return SquareSandbox
}

func (s Square) GetSquareBaseURL() string {
	if s.GetSquareEnv() == SquareProduction {
		return "https://connect.squareup.com"
	}
	return "https://connect.squareupsandbox.com"
}

func (s Square) GetSquareAccessToken() string {
	if s.GetSquareEnv() == SquareProduction {
		return GetEnv("SQUARE_PROD_ACCESS_TOKEN", "")
	}
	return GetEnv("SQUARE_SANDBOX_ACCESS_TOKEN", "")
}

func (s Square) GetSquareLocationID() string {
	if s.GetSquareEnv() == SquareProduction {
		return GetEnv("SQUARE_PROD_LOCATION_ID", "")
	}
	return GetEnv("SQUARE_SANDBOX_LOCATION_ID", "")
}

func (Square) GetSquareAPIVersion() string {
	return GetEnv("SQUARE_API_VERSION", "2025-01-23")
}

// GetSquareWebhookSignatureKey returns the subscription's signature key. Empty disables verification.
func (Square) GetSquareWebhookSignatureKey() string {
	return GetEnv("SQUARE_WEBHOOK_SIGNATURE_KEY", "")
}

// GetSquareWebhookURL is the notification URL exactly as registered with Square.
func (Square) GetSquareWebhookURL() string {
	return GetEnv("SQUARE_WEBHOOK_URL", "")
}
