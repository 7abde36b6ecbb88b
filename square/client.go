// Package square reads orders and customers from the Square API and interprets
// its webhook notifications.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/pkg/errors"
)

const (
	serviceName       = "square"
	defaultBaseURL    = "https://connect.squareupsandbox.com"
	defaultAPIVersion = "2025-01-23"
	defaultTimeout    = 30 * time.Second
	maxErrorBody      = 64 << 10
)

type Client struct {
	baseURL     string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithAPIVersion(version string) ClientOption {
	return func(c *Client) {
		c.apiVersion = version
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

func NewClient(accessToken string, options ...ClientOption) (*Client, error) {
	if accessToken == "" {
		return nil, errors.New("[square.NewClient] access token is required")
	}

	c := &Client{
		baseURL:     defaultBaseURL,
		accessToken: accessToken,
		apiVersion:  defaultAPIVersion,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// GetOrder retrieves an order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidRequest, "Client.GetOrder order id is required")
	}

	var out orderEnvelope
	if err := c.do(ctx, http.MethodGet, "/v2/orders/"+url.PathEscape(orderID), nil, &out); err != nil {
		return nil, errors.Wrap(err, "Client.GetOrder")
	}
	if out.Order == nil {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "Client.GetOrder %s", orderID)
	}
	return out.Order, nil
}

// GetCustomer retrieves a customer by id.
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*Customer, error) {
	if customerID == "" {
		return nil, errors.Wrap(apperrors.ErrInvalidRequest, "Client.GetCustomer customer id is required")
	}

	var out customerEnvelope
	if err := c.do(ctx, http.MethodGet, "/v2/customers/"+url.PathEscape(customerID), nil, &out); err != nil {
		return nil, errors.Wrap(err, "Client.GetCustomer")
	}
	if out.Customer == nil {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "Client.GetCustomer %s", customerID)
	}
	return out.Customer, nil
}

// LatestOrder returns the most recently created order at locationID, or nil when there is none.
func (c *Client) LatestOrder(ctx context.Context, locationID string) (*Order, error) {
	body := searchOrdersRequest{
		LocationIDs: []string{locationID},
		Limit:       1,
		Query:       searchOrdersQuery{Sort: searchOrdersSort{SortField: "CREATED_AT", SortOrder: "DESC"}},
	}

	var out searchOrdersResponse
	if err := c.do(ctx, http.MethodPost, "/v2/orders/search", body, &out); err != nil {
		return nil, errors.Wrap(err, "Client.LatestOrder")
	}
	if len(out.Orders) == 0 {
		return nil, nil
	}
	return &out.Orders[0], nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "Marshal")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "NewRequest")
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Square-Version", c.apiVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperrors.NewUpstreamError(serviceName, resp.StatusCode, data)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}
