package xero

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// ListAccounts returns the chart of accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var out AccountsEnvelope
	if err := c.do(ctx, http.MethodGet, "/Accounts", nil, nil, &out); err != nil {
		return nil, errors.Wrap(err, "Client.ListAccounts")
	}
	return out.Accounts, nil
}

// FilterAccounts keeps the accounts with the given code. An empty code or no match
// returns all accounts.
func FilterAccounts(accounts []Account, code string) []Account {
	if code == "" {
		return accounts
	}
	var matched []Account
	for _, a := range accounts {
		if a.Code == code {
			matched = append(matched, a)
		}
	}
	if len(matched) == 0 {
		return accounts
	}
	return matched
}
