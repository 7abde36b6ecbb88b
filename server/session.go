package server

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	oauthSessionName = "pos-ledger-oauth"
	oauthStateKey    = "oauth_state"
	oauthSessionAge  = 10 * 60
)

// NewSessionStore returns the cookie store holding the OAuth state between connect and callback.
// Lax same-site keeps the cookie on the top-level redirect back from the identity provider.
func NewSessionStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   oauthSessionAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func (s *Server) saveOAuthState(w http.ResponseWriter, r *http.Request, state string) error {
	session, _ := s.sessions.Get(r, oauthSessionName)
	session.Values[oauthStateKey] = state
	return session.Save(r, w)
}

// popOAuthState returns the stored state and clears it so it cannot be replayed.
func (s *Server) popOAuthState(w http.ResponseWriter, r *http.Request) (string, error) {
	session, _ := s.sessions.Get(r, oauthSessionName)
	state, _ := session.Values[oauthStateKey].(string)
	delete(session.Values, oauthStateKey)
	return state, session.Save(r, w)
}
