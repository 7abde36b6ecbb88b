package xero_test

import (
	"context"
	"net/http"
	"testing"

	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/jrsteele09/pos-ledger-sync/token"
	"github.com/jrsteele09/pos-ledger-sync/xero"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateContact(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a contact when nothing matches", func(t *testing.T) {
		f := newFakeXero(t)
		c := f.client(t)

		contact, created, err := c.FindOrCreateContact(ctx, xero.Customer{ID: "C1", EmailAddress: "a@x.com"})
		require.NoError(t, err)
		require.True(t, created)
		require.Equal(t, "a@x.com", contact.Name)
		require.Equal(t, "C1", contact.AccountNumber)
		require.Equal(t, 1, f.contactCount())

		log := f.requestLog()
		require.Equal(t, []request{
			{Method: http.MethodGet, Path: "/Contacts", Query: `AccountNumber=="C1"`},
			{Method: http.MethodGet, Path: "/Contacts", Query: `AccountNumber=="SQ-C1"`},
			{Method: http.MethodGet, Path: "/Contacts", Query: `EmailAddress=="a@x.com"`},
			{Method: http.MethodPost, Path: "/Contacts"},
		}, log)
	})

	t.Run("account number match wins over email match", func(t *testing.T) {
		f := newFakeXero(t)
		f.seedContact(xero.Contact{ContactID: "by-email", Name: "Other", EmailAddress: "a@x.com"})
		f.seedContact(xero.Contact{ContactID: "by-account", Name: "Alice", AccountNumber: "C1"})
		c := f.client(t)

		contact, created, err := c.FindOrCreateContact(ctx, xero.Customer{ID: "C1", EmailAddress: "a@x.com"})
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "by-account", contact.ContactID)
		require.Len(t, f.requestLog(), 1)
	})

	t.Run("legacy account number is matched and normalised", func(t *testing.T) {
		f := newFakeXero(t)
		f.seedContact(xero.Contact{ContactID: "legacy", Name: "Alice", AccountNumber: "SQ-C1"})
		c := f.client(t)

		contact, created, err := c.FindOrCreateContact(ctx, xero.Customer{ID: "C1"})
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "legacy", contact.ContactID)
		require.Equal(t, "C1", f.contact("legacy").AccountNumber)
	})

	t.Run("email match backfills a missing account number", func(t *testing.T) {
		f := newFakeXero(t)
		f.seedContact(xero.Contact{ContactID: "by-email", Name: "Alice", EmailAddress: "a@x.com"})
		c := f.client(t)

		contact, created, err := c.FindOrCreateContact(ctx, xero.Customer{ID: "C1", EmailAddress: "a@x.com"})
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "by-email", contact.ContactID)
		require.Equal(t, "C1", f.contact("by-email").AccountNumber)
		require.Equal(t, 1, f.contactCount())
	})

	t.Run("email match keeps a foreign account number", func(t *testing.T) {
		f := newFakeXero(t)
		f.seedContact(xero.Contact{ContactID: "by-email", Name: "Alice", EmailAddress: "a@x.com", AccountNumber: "ACME-9"})
		c := f.client(t)

		_, created, err := c.FindOrCreateContact(ctx, xero.Customer{ID: "C1", EmailAddress: "a@x.com"})
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "ACME-9", f.contact("by-email").AccountNumber)
	})

	t.Run("reconciling twice creates one contact", func(t *testing.T) {
		f := newFakeXero(t)
		c := f.client(t)
		customer := xero.Customer{ID: "C1", EmailAddress: "a@x.com"}

		first, created, err := c.FindOrCreateContact(ctx, customer)
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := c.FindOrCreateContact(ctx, customer)
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, first.ContactID, second.ContactID)
		require.Equal(t, 1, f.contactCount())
	})

	t.Run("create rejected", func(t *testing.T) {
		f := newFakeXero(t)
		c := f.client(t)
		f.fail(http.StatusBadRequest)

		_, _, err := c.FindOrCreateContact(ctx, xero.Customer{ID: "C1"})
		status, ok := apperrors.UpstreamStatus(err)
		require.True(t, ok)
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("not connected", func(t *testing.T) {
		c, err := xero.NewClient(staticTokens{err: apperrors.ErrNotConnected})
		require.NoError(t, err)

		_, _, err = c.FindOrCreateContact(ctx, xero.Customer{ID: "C1"})
		require.ErrorIs(t, err, apperrors.ErrNotConnected)
	})

	t.Run("refresh failure reads as not connected", func(t *testing.T) {
		c, err := xero.NewClient(staticTokens{creds: token.Credentials{TenantID: testTenantID}, err: apperrors.ErrRefreshFailed})
		require.NoError(t, err)

		_, _, err = c.FindOrCreateContact(ctx, xero.Customer{ID: "C1"})
		require.ErrorIs(t, err, apperrors.ErrNotConnected)
		require.ErrorIs(t, err, apperrors.ErrRefreshFailed)
	})
}

func TestNewContact(t *testing.T) {
	t.Run("full customer", func(t *testing.T) {
		contact := xero.NewContact(xero.Customer{
			ID:           "C1",
			GivenName:    "Alice",
			FamilyName:   "Smith",
			EmailAddress: "a@x.com",
			PhoneNumber:  "+61 (400) 123-456",
		})
		require.Equal(t, xero.Contact{
			Name:          "a@x.com",
			FirstName:     "Alice",
			LastName:      "Smith",
			EmailAddress:  "a@x.com",
			AccountNumber: "C1",
			Phones:        []xero.Phone{{PhoneType: "MOBILE", PhoneNumber: "61400123456"}},
		}, contact)
	})

	t.Run("placeholder name without email", func(t *testing.T) {
		require.Equal(t, "Square [C1]", xero.NewContact(xero.Customer{ID: "C1"}).Name)
		require.Equal(t, "Square [no-id]", xero.NewContact(xero.Customer{}).Name)
	})

	t.Run("phone is capped", func(t *testing.T) {
		long := ""
		for i := 0; i < 60; i++ {
			long += "1"
		}
		contact := xero.NewContact(xero.Customer{ID: "C1", PhoneNumber: long})
		require.Len(t, contact.Phones[0].PhoneNumber, 50)
	})
}

func TestContactQueries(t *testing.T) {
	ctx := context.Background()
	f := newFakeXero(t)
	for _, id := range []string{"c1", "c2", "c3"} {
		f.seedContact(xero.Contact{ContactID: id, Name: id})
	}
	c := f.client(t)

	contacts, err := c.ListContacts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	contact, err := c.GetContact(ctx, "c3")
	require.NoError(t, err)
	require.Equal(t, "c3", contact.Name)

	_, err = c.GetContact(ctx, "missing")
	status, ok := apperrors.UpstreamStatus(err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, status)
}
