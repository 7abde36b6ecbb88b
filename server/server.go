// Package server exposes the ledger connection flow, the admin ledger endpoints and the
// commerce webhook over HTTP.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/sessions"
	"github.com/jrsteele09/pos-ledger-sync/internal/config"
	"github.com/jrsteele09/pos-ledger-sync/reconcile"
	"github.com/jrsteele09/pos-ledger-sync/square"
	"github.com/jrsteele09/pos-ledger-sync/token"
	"github.com/jrsteele09/pos-ledger-sync/xero"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// TokenManager runs the consent flow and owns the stored connection.
type TokenManager interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	Connect(ctx context.Context, tok *oauth2.Token, tenantID string) (token.Record, error)
	Current(ctx context.Context) (*token.Record, error)
	Disconnect(ctx context.Context) error
}

// Ledger is the accounting API surface used by the admin endpoints.
type Ledger interface {
	ListConnections(ctx context.Context, accessToken string) ([]xero.Connection, error)
	ListInvoices(ctx context.Context, page int) ([]xero.Invoice, error)
	PostInvoices(ctx context.Context, invoices xero.InvoicesEnvelope) (*xero.InvoicesEnvelope, error)
	ListContacts(ctx context.Context, limit int) ([]xero.Contact, error)
	GetContact(ctx context.Context, contactID string) (*xero.Contact, error)
	FindOrCreateContact(ctx context.Context, customer xero.Customer) (*xero.Contact, bool, error)
	ListAccounts(ctx context.Context) ([]xero.Account, error)
}

// Orders reads from the commerce platform.
type Orders interface {
	LatestOrder(ctx context.Context, locationID string) (*square.Order, error)
	GetCustomer(ctx context.Context, customerID string) (*square.Customer, error)
}

// EventHandler processes a decoded webhook event.
type EventHandler interface {
	HandleEvent(ctx context.Context, event square.Event) reconcile.Outcome
}

// IDTokenVerifier checks the id_token returned by the consent flow.
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

var (
	_ TokenManager    = (*token.Manager)(nil)
	_ Ledger          = (*xero.Client)(nil)
	_ Orders          = (*square.Client)(nil)
	_ EventHandler    = (*reconcile.Service)(nil)
	_ IDTokenVerifier = (*oidc.IDTokenVerifier)(nil)
)

// Dependencies are the collaborators a Server is built from. IDTokens is optional.
type Dependencies struct {
	Tokens   TokenManager
	Ledger   Ledger
	Orders   Orders
	Events   EventHandler
	IDTokens IDTokenVerifier
	Sessions sessions.Store
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	tokens   TokenManager
	ledger   Ledger
	orders   Orders
	events   EventHandler
	idTokens IDTokenVerifier
	sessions sessions.Store
}

func New(config config.Config, deps Dependencies) (*Server, error) {
	if config == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if deps.Tokens == nil || deps.Ledger == nil || deps.Orders == nil || deps.Events == nil {
		return nil, errors.New("[Server New] tokens, ledger, orders and events are required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("[Server New] session store is required")
	}

	s := &Server{
		env:      config.GetEnv(),
		mux:      http.NewServeMux(),
		config:   config,
		tokens:   deps.Tokens,
		ledger:   deps.Ledger,
		orders:   deps.Orders,
		events:   deps.Events,
		idTokens: deps.IDTokens,
		sessions: deps.Sessions,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Debug().Str("method", parts[0]).Str("path", parts[1]).Msg("Route registered")
		} else {
			log.Debug().Str("path", parts[0]).Msg("Route registered")
		}
	}
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
