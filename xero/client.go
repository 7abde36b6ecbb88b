// Package xero is a thin client for the Xero Accounting API: contacts, invoices, accounts and
// the tenant connections endpoint. Every call carries the bearer token and tenant header
// obtained from a TokenProvider.
package xero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/pos-ledger-sync/internal/config"
	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/jrsteele09/pos-ledger-sync/token"
	"github.com/pkg/errors"
)

const (
	serviceName        = "xero"
	tenantHeader       = "Xero-tenant-id"
	defaultBaseURL     = "https://api.xero.com/api.xro/2.0"
	defaultConnections = "https://api.xero.com/connections"
	defaultPrefix      = "SQUARE"
	defaultTimeout     = 30 * time.Second
	maxErrorBody       = 64 << 10
)

// TokenProvider supplies credentials for each outbound call.
type TokenProvider interface {
	ValidToken(ctx context.Context) (token.Credentials, error)
}

type Client struct {
	baseURL        string
	connectionsURL string
	tokens         TokenProvider
	httpClient     *http.Client
	invoicePrefix  string
	accountCodes   AccountCodes
	nowFunc        func() time.Time
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithConnectionsURL(connectionsURL string) ClientOption {
	return func(c *Client) {
		c.connectionsURL = connectionsURL
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithInvoicePrefix sets the prefix of generated invoice numbers ("<PREFIX> - <order id>").
func WithInvoicePrefix(prefix string) ClientOption {
	return func(c *Client) {
		c.invoicePrefix = prefix
	}
}

func WithAccountCodes(codes AccountCodes) ClientOption {
	return func(c *Client) {
		c.accountCodes = codes
	}
}

func WithNowFunc(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.nowFunc = now
	}
}

func NewClient(tokens TokenProvider, options ...ClientOption) (*Client, error) {
	if tokens == nil {
		return nil, errors.New("[xero.NewClient] token provider is required")
	}

	c := &Client{
		baseURL:        defaultBaseURL,
		connectionsURL: defaultConnections,
		tokens:         tokens,
		httpClient:     &http.Client{Timeout: defaultTimeout},
		invoicePrefix:  defaultPrefix,
		accountCodes:   NewAccountCodes(defaultAccountCode, []config.AccountCodeRule{}),
		nowFunc:        time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// do sends an authenticated request and decodes a 2xx JSON response into out.
// A refresh failure is reported as not connected.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	creds, err := c.tokens.ValidToken(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrRefreshFailed) {
			return fmt.Errorf("%w: %w", apperrors.ErrNotConnected, err)
		}
		return err
	}
	if creds.AccessToken == "" || creds.TenantID == "" {
		return apperrors.ErrNotConnected
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "xero.Client.do Marshal")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errors.Wrap(err, "xero.Client.do NewRequest")
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set(tenantHeader, creds.TenantID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperrors.NewUpstreamError(serviceName, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", req.Method, req.URL.Path)
	}
	return nil
}

// whereEquals builds a Xero where filter of the form Field=="value".
func whereEquals(field, value string) url.Values {
	escaped := strings.ReplaceAll(value, `"`, `\"`)
	return url.Values{"where": []string{fmt.Sprintf(`%s=="%s"`, field, escaped)}}
}
