package token

import (
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// Record is the persisted ledger connection: one token pair plus the tenant it is bound to.
// It is replaced wholesale on every refresh and never partially mutated.
type Record struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`  // Lifetime in seconds as reported by the token endpoint
	ObtainedAt   int64  `json:"obtained_at"` // Unix seconds when the pair was issued
	TenantID     string `json:"tenant_id"`
	Scope        string `json:"scope,omitempty"`
}

// Credentials is what an outbound ledger call needs.
type Credentials struct {
	AccessToken string
	TenantID    string
}

// Expiry returns the moment the access token stops being accepted.
func (r Record) Expiry() time.Time {
	return time.Unix(r.ObtainedAt+r.ExpiresIn, 0)
}

// IsValid reports whether now < obtained_at + expires_in - margin.
func (r Record) IsValid(now time.Time, margin time.Duration) bool {
	if r.AccessToken == "" {
		return false
	}
	deadline := r.ObtainedAt + r.ExpiresIn - int64(margin/time.Second)
	return now.Unix() < deadline
}

func (r Record) Credentials() Credentials {
	return Credentials{AccessToken: r.AccessToken, TenantID: r.TenantID}
}

// NewRecord builds a record from a token endpoint response obtained at now.
func NewRecord(tok *oauth2.Token, tenantID string, now time.Time) Record {
	scope, _ := tok.Extra("scope").(string)

	return Record{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    expiresIn(tok),
		ObtainedAt:   now.Unix(),
		TenantID:     tenantID,
		Scope:        scope,
	}
}

// expiresIn returns the lifetime the token endpoint reported. The Expiry fallback is
// measured against the wall clock oauth2 derived it from.
func expiresIn(tok *oauth2.Token) int64 {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	if tok.ExpiresIn > 0 {
		return tok.ExpiresIn
	}
	if !tok.Expiry.IsZero() {
		return int64(time.Until(tok.Expiry).Round(time.Second) / time.Second)
	}
	return 0
}
