package xero

import (
	"strings"

	"github.com/jrsteele09/pos-ledger-sync/internal/config"
)

const defaultAccountCode = "200"

// AccountCodes picks a ledger account code for a line item description.
// Rules are scanned in their declared order and the first keyword contained in the
// description wins, so overlapping keywords resolve deterministically.
type AccountCodes struct {
	rules    []config.AccountCodeRule
	fallback string
}

func NewAccountCodes(fallback string, rules []config.AccountCodeRule) AccountCodes {
	if fallback == "" {
		fallback = defaultAccountCode
	}
	normalised := make([]config.AccountCodeRule, 0, len(rules))
	for _, r := range rules {
		keyword := strings.ToLower(strings.TrimSpace(r.Keyword))
		if keyword == "" || r.Code == "" {
			continue
		}
		normalised = append(normalised, config.AccountCodeRule{Keyword: keyword, Code: r.Code})
	}
	return AccountCodes{rules: normalised, fallback: fallback}
}

// Code returns the account code for description.
func (a AccountCodes) Code(description string) string {
	desc := strings.ToLower(description)
	for _, r := range a.rules {
		if strings.Contains(desc, r.Keyword) {
			return r.Code
		}
	}
	return a.fallback
}
