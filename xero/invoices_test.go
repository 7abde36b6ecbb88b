package xero_test

import (
	"context"
	"net/http"
	"testing"

	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/jrsteele09/pos-ledger-sync/money"
	"github.com/jrsteele09/pos-ledger-sync/xero"
	"github.com/stretchr/testify/require"
)

func TestInvoiceNumber(t *testing.T) {
	require.Equal(t, "SQUARE - O1", xero.InvoiceNumber("SQUARE", "O1"))
	require.NotEqual(t, xero.InvoiceNumber("SQUARE", "O1"), xero.InvoiceNumber("SQUARE", "O2"))
}

func TestCreateInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFakeXero(t)
	c := f.client(t)

	items := []xero.InvoiceItem{
		{Description: "Beauty Services (Discounted)", VariantLabel: "Full Glam", Quantity: 1, UnitPrice: money.FromCents(5000, "AUD")},
		{Description: "Deposit - Photoshoot Collections", Quantity: 2, UnitPrice: money.FromCents(12050, "AUD")},
	}

	invoice, err := c.CreateInvoice(ctx, "contact-1", items, "O1", "Square (Pending Payment)")
	require.NoError(t, err)
	require.Equal(t, "invoice-1", invoice.InvoiceID)
	require.Equal(t, "SQUARE - O1", invoice.InvoiceNumber)

	sent := f.postedInvoice(t, 0)

	require.Equal(t, "ACCREC", sent["Type"])
	require.Equal(t, "AUTHORISED", sent["Status"])
	require.Equal(t, "Inclusive", sent["LineAmountTypes"])
	require.Equal(t, "2025-03-14", sent["Date"])
	require.Equal(t, "2025-03-14", sent["DueDate"])
	require.Equal(t, "Square (Pending Payment)", sent["Reference"])
	require.Equal(t, map[string]any{"ContactID": "contact-1"}, sent["Contact"])

	lines := sent["LineItems"].([]any)
	require.Equal(t, map[string]any{
		"Description": "Full Glam",
		"Quantity":    float64(1),
		"UnitAmount":  50.0,
		"AccountCode": "261",
	}, lines[0])
	require.Equal(t, map[string]any{
		"Description": "Deposit - Photoshoot Collections",
		"Quantity":    float64(2),
		"UnitAmount":  120.5,
		"AccountCode": "260",
	}, lines[1])
}

func TestCreateInvoice_Validation(t *testing.T) {
	ctx := context.Background()
	c := newFakeXero(t).client(t)

	_, err := c.CreateInvoice(ctx, "", []xero.InvoiceItem{{Quantity: 1}}, "O1", "")
	require.Error(t, err)

	_, err = c.CreateInvoice(ctx, "contact-1", nil, "O1", "")
	require.Error(t, err)
}

func TestInvoiceLookupAndUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFakeXero(t)
	c := f.client(t)

	missing, err := c.GetInvoiceByOrderID(ctx, "O1")
	require.NoError(t, err)
	require.Nil(t, missing)

	created, err := c.CreateInvoice(ctx, "contact-1", []xero.InvoiceItem{{Description: "x", Quantity: 1, UnitPrice: money.FromCents(100, "AUD")}}, "O1", "Square (Pending Payment)")
	require.NoError(t, err)

	found, err := c.GetInvoiceByOrderID(ctx, "O1")
	require.NoError(t, err)
	require.Equal(t, created.InvoiceID, found.InvoiceID)

	updated, err := c.UpdateInvoiceReference(ctx, created.InvoiceID, "Square VISA ****1111")
	require.NoError(t, err)
	require.Equal(t, "Square VISA ****1111", updated.Reference)

	require.Equal(t, map[string]any{"InvoiceID": created.InvoiceID, "Reference": "Square VISA ****1111"}, f.postedInvoice(t, 1))

	invoices, err := c.ListInvoices(ctx, 0)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
}

func TestGetInvoiceByOrderID_Rejected(t *testing.T) {
	f := newFakeXero(t)
	c := f.client(t)
	f.fail(http.StatusUnauthorized)

	_, err := c.GetInvoiceByOrderID(context.Background(), "O1")
	status, ok := apperrors.UpstreamStatus(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, status)
}

func TestListAccounts(t *testing.T) {
	c := newFakeXero(t).client(t)

	accounts, err := c.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	require.Equal(t, []xero.Account{{AccountID: "a2", Code: "261", Name: "Beauty"}}, xero.FilterAccounts(accounts, "261"))
	require.Len(t, xero.FilterAccounts(accounts, "999"), 2)
	require.Len(t, xero.FilterAccounts(accounts, ""), 2)
}
