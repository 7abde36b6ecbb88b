package main

import (
	"context"
	"crypto/rand"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-redis/redis/v8"
	"github.com/jrsteele09/pos-ledger-sync/internal/config"
	"github.com/jrsteele09/pos-ledger-sync/notify"
	"github.com/jrsteele09/pos-ledger-sync/reconcile"
	"github.com/jrsteele09/pos-ledger-sync/server"
	"github.com/jrsteele09/pos-ledger-sync/square"
	"github.com/jrsteele09/pos-ledger-sync/token"
	"github.com/jrsteele09/pos-ledger-sync/token/filestore"
	"github.com/jrsteele09/pos-ledger-sync/token/redisstore"
	"github.com/jrsteele09/pos-ledger-sync/xero"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"golang.org/x/oauth2"
)

// app holds the wired HTTP handler and the resources to release on shutdown.
type app struct {
	handler http.Handler
	closers []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Err(err).Msg("Failed to release resource")
		}
	}
}

func newApp(ctx context.Context, c config.Config) (*app, error) {
	a := &app{}
	httpClient := &http.Client{Timeout: c.GetRequestTimeout()}

	store, err := a.tokenStore(c)
	if err != nil {
		return nil, err
	}

	tokens, err := token.NewManager(store, oauthConfig(c),
		token.WithExpiryMargin(c.GetTokenExpiryMargin()),
		token.WithRevocationURL(c.GetXeroRevocationURL()),
		token.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, errors.Wrap(err, "newApp token manager")
	}

	ledger, err := xero.NewClient(tokens,
		xero.WithBaseURL(c.GetXeroAPIBaseURL()),
		xero.WithConnectionsURL(c.GetXeroConnectionsURL()),
		xero.WithHTTPClient(httpClient),
		xero.WithInvoicePrefix(c.GetInvoicePrefix()),
		xero.WithAccountCodes(xero.NewAccountCodes(c.GetDefaultAccountCode(), c.GetAccountCodeRules())),
	)
	if err != nil {
		return nil, errors.Wrap(err, "newApp ledger client")
	}

	orders, err := square.NewClient(c.GetSquareAccessToken(),
		square.WithBaseURL(c.GetSquareBaseURL()),
		square.WithAPIVersion(c.GetSquareAPIVersion()),
		square.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, errors.Wrap(err, "newApp commerce client")
	}

	var serviceOptions []reconcile.ServiceOption
	if c.GetSlackBotToken() != "" && c.GetSlackChannelID() != "" {
		notifier, err := notify.NewSlackNotifier(slack.New(c.GetSlackBotToken()), c.GetSlackChannelID())
		if err != nil {
			return nil, errors.Wrap(err, "newApp slack notifier")
		}
		serviceOptions = append(serviceOptions, reconcile.WithNotifier(notifier))
	}

	service, err := reconcile.NewService(orders, ledger, square.NewAllowlist(c.GetBillableItems()...), serviceOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "newApp reconcile service")
	}

	secret, err := sessionSecret(c)
	if err != nil {
		return nil, err
	}

	keySet := oidc.NewRemoteKeySet(oidc.ClientContext(ctx, httpClient), c.GetXeroJWKSURL())
	verifier := oidc.NewVerifier(c.GetXeroIssuer(), keySet, &oidc.Config{ClientID: c.GetXeroClientID()})

	handler, err := server.New(c, server.Dependencies{
		Tokens:   tokens,
		Ledger:   ledger,
		Orders:   orders,
		Events:   service,
		IDTokens: verifier,
		Sessions: server.NewSessionStore(secret, c.GetEnv() != "DEV"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "newApp server")
	}
	a.handler = handler
	return a, nil
}

func oauthConfig(c config.XeroConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.GetXeroClientID(),
		ClientSecret: c.GetXeroClientSecret(),
		RedirectURL:  c.GetXeroRedirectURI(),
		Scopes:       c.GetXeroScopes(),
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.GetXeroAuthURL(),
			TokenURL:  c.GetXeroTokenURL(),
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

func (a *app) tokenStore(c config.EnvConfig) (token.Store, error) {
	switch c.GetTokenStore() {
	case config.TokenStoreFile:
		log.Info().Str("path", c.GetTokensFile()).Msg("Using file token store")
		return filestore.New(c.GetTokensFile()), nil
	case config.TokenStoreRedis:
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{c.GetRedisAddr()},
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		a.closers = append(a.closers, client.Close)
		log.Info().Str("addr", c.GetRedisAddr()).Msg("Using redis token store")
		return redisstore.New(client, c.GetRedisPrefix()), nil
	default:
		return nil, errors.Errorf("[tokenStore] unknown TOKEN_STORE %q", c.GetTokenStore())
	}
}

// sessionSecret returns SESSION_SECRET, or a random key in DEV. A random key means
// a restart invalidates consent flows that are in progress.
func sessionSecret(c config.EnvConfig) ([]byte, error) {
	if secret := c.GetSessionSecret(); secret != "" {
		return []byte(secret), nil
	}
	if c.GetEnv() != "DEV" {
		return nil, errors.New("[sessionSecret] SESSION_SECRET is required outside DEV")
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Wrap(err, "sessionSecret rand.Read")
	}
	log.Warn().Msg("SESSION_SECRET not set, using a random key")
	return secret, nil
}
