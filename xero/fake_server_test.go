package xero_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/pos-ledger-sync/internal/config"
	"github.com/jrsteele09/pos-ledger-sync/token"
	"github.com/jrsteele09/pos-ledger-sync/xero"
	"github.com/stretchr/testify/require"
)

const (
	testAccessToken = "access-1"
	testTenantID    = "tenant-1"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

var wherePattern = regexp.MustCompile(`^(\w+)=="(.*)"$`)

type staticTokens struct {
	creds token.Credentials
	err   error
}

func (s staticTokens) ValidToken(context.Context) (token.Credentials, error) {
	return s.creds, s.err
}

type request struct {
	Method string
	Path   string
	Query  string
}

// fakeXero is an in-memory stand-in for the contacts and invoices endpoints.
type fakeXero struct {
	t        *testing.T
	server   *httptest.Server
	mu       sync.Mutex
	contacts []xero.Contact
	invoices []xero.Invoice
	requests []request
	posted   []json.RawMessage
	failWith int // When non-zero every request answers with this status
}

func newFakeXero(t *testing.T) *fakeXero {
	t.Helper()

	f := &fakeXero{t: t}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /Contacts", f.listContacts)
	mux.HandleFunc("POST /Contacts", f.postContacts)
	mux.HandleFunc("GET /Contacts/{id}", f.getContact)
	mux.HandleFunc("GET /Invoices", f.listInvoices)
	mux.HandleFunc("POST /Invoices", f.postInvoices)
	mux.HandleFunc("GET /Accounts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, xero.AccountsEnvelope{Accounts: []xero.Account{
			{AccountID: "a1", Code: "200", Name: "Sales"},
			{AccountID: "a2", Code: "261", Name: "Beauty"},
		}})
	})

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer "+testAccessToken, r.Header.Get("Authorization"))
		require.Equal(t, testTenantID, r.Header.Get("Xero-tenant-id"))

		f.mu.Lock()
		f.requests = append(f.requests, request{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query().Get("where") + r.URL.Query().Get("InvoiceNumbers")})
		failWith := f.failWith
		f.mu.Unlock()

		if failWith != 0 {
			w.WriteHeader(failWith)
			_, _ = w.Write([]byte(`{"Message":"rejected"}`))
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeXero) client(t *testing.T, options ...xero.ClientOption) *xero.Client {
	t.Helper()

	opts := append([]xero.ClientOption{
		xero.WithBaseURL(f.server.URL),
		xero.WithHTTPClient(f.server.Client()),
		xero.WithNowFunc(func() time.Time { return fixedNow }),
		xero.WithAccountCodes(xero.NewAccountCodes("200", []config.AccountCodeRule{
			{Keyword: "beauty", Code: "261"},
			{Keyword: "collections", Code: "260"},
		})),
	}, options...)

	c, err := xero.NewClient(staticTokens{creds: token.Credentials{AccessToken: testAccessToken, TenantID: testTenantID}}, opts...)
	require.NoError(t, err)
	return c
}

func (f *fakeXero) fail(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = status
}

func (f *fakeXero) seedContact(c xero.Contact) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, c)
}

func (f *fakeXero) contact(id string) xero.Contact {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.contacts {
		if c.ContactID == id {
			return c
		}
	}
	f.t.Fatalf("contact %s not found", id)
	return xero.Contact{}
}

func (f *fakeXero) contactCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.contacts)
}

func (f *fakeXero) postedInvoice(t *testing.T, i int) map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	require.Greater(t, len(f.posted), i)
	var body map[string][]map[string]any
	require.NoError(t, json.Unmarshal(f.posted[i], &body))
	require.Len(t, body["Invoices"], 1)
	return body["Invoices"][0]
}

func (f *fakeXero) requestLog() []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]request(nil), f.requests...)
}

func (f *fakeXero) listContacts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	where := r.URL.Query().Get("where")
	if where == "" {
		writeJSON(w, xero.ContactsEnvelope{Contacts: f.contacts})
		return
	}

	m := wherePattern.FindStringSubmatch(where)
	require.NotNil(f.t, m, "unexpected where clause %q", where)

	matched := []xero.Contact{}
	for _, c := range f.contacts {
		switch m[1] {
		case "AccountNumber":
			if c.AccountNumber == m[2] {
				matched = append(matched, c)
			}
		case "EmailAddress":
			if c.EmailAddress == m[2] {
				matched = append(matched, c)
			}
		default:
			f.t.Fatalf("unexpected where field %q", m[1])
		}
	}
	writeJSON(w, xero.ContactsEnvelope{Contacts: matched})
}

func (f *fakeXero) getContact(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.contacts {
		if c.ContactID == r.PathValue("id") {
			writeJSON(w, xero.ContactsEnvelope{Contacts: []xero.Contact{c}})
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (f *fakeXero) postContacts(w http.ResponseWriter, r *http.Request) {
	var in xero.ContactsEnvelope
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&in))
	require.Len(f.t, in.Contacts, 1)

	f.mu.Lock()
	defer f.mu.Unlock()

	c := in.Contacts[0]
	if c.ContactID != "" {
		for i := range f.contacts {
			if f.contacts[i].ContactID == c.ContactID {
				f.contacts[i].AccountNumber = c.AccountNumber
				writeJSON(w, xero.ContactsEnvelope{Contacts: []xero.Contact{f.contacts[i]}})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		return
	}

	c.ContactID = fmt.Sprintf("contact-%d", len(f.contacts)+1)
	f.contacts = append(f.contacts, c)
	writeJSON(w, xero.ContactsEnvelope{Contacts: []xero.Contact{c}})
}

func (f *fakeXero) listInvoices(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	number := r.URL.Query().Get("InvoiceNumbers")
	matched := []xero.Invoice{}
	for _, inv := range f.invoices {
		if number == "" || inv.InvoiceNumber == number {
			matched = append(matched, inv)
		}
	}
	writeJSON(w, xero.InvoicesEnvelope{Invoices: matched})
}

func (f *fakeXero) postInvoices(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&raw))

	var in xero.InvoicesEnvelope
	require.NoError(f.t, json.Unmarshal(raw, &in))
	require.Len(f.t, in.Invoices, 1)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, raw)

	inv := in.Invoices[0]
	if inv.InvoiceID != "" {
		for i := range f.invoices {
			if f.invoices[i].InvoiceID == inv.InvoiceID {
				f.invoices[i].Reference = inv.Reference
				writeJSON(w, xero.InvoicesEnvelope{Invoices: []xero.Invoice{f.invoices[i]}})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		return
	}

	inv.InvoiceID = fmt.Sprintf("invoice-%d", len(f.invoices)+1)
	f.invoices = append(f.invoices, inv)
	writeJSON(w, xero.InvoicesEnvelope{Invoices: []xero.Invoice{inv}})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
