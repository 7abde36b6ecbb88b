package xero

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/pos-ledger-sync/money"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const isoDate = "2006-01-02"

// InvoiceItem is one billable line extracted from an order.
type InvoiceItem struct {
	Description  string // Catalog name, used to choose the account code
	VariantLabel string // Shown on the invoice line
	Quantity     int
	UnitPrice    money.Money
}

// InvoiceNumber derives the idempotency key for an order. Distinct order ids always
// produce distinct numbers.
func InvoiceNumber(prefix, orderID string) string {
	return fmt.Sprintf("%s - %s", prefix, orderID)
}

func (c *Client) InvoiceNumber(orderID string) string {
	return InvoiceNumber(c.invoicePrefix, orderID)
}

// NewInvoice builds an approved, tax-inclusive receivable dated today.
func (c *Client) NewInvoice(contactID string, items []InvoiceItem, orderID, reference string) Invoice {
	today := c.nowFunc().Format(isoDate)

	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		description := item.VariantLabel
		if description == "" {
			description = item.Description
		}
		lines = append(lines, LineItem{
			Description: description,
			Quantity:    float64(item.Quantity),
			UnitAmount:  item.UnitPrice.Decimal(),
			AccountCode: c.accountCodes.Code(item.Description),
		})
	}

	return Invoice{
		Type:            invoiceTypeReceivable,
		Contact:         &Contact{ContactID: contactID},
		LineItems:       lines,
		InvoiceNumber:   c.InvoiceNumber(orderID),
		Date:            today,
		DueDate:         today,
		Status:          invoiceStatusApproved,
		LineAmountTypes: lineAmountsInclusive,
		Reference:       reference,
	}
}

// CreateInvoice creates the invoice for orderID.
func (c *Client) CreateInvoice(ctx context.Context, contactID string, items []InvoiceItem, orderID, reference string) (*Invoice, error) {
	if contactID == "" {
		return nil, errors.New("Client.CreateInvoice contact id is required")
	}
	if len(items) == 0 {
		return nil, errors.New("Client.CreateInvoice at least one item is required")
	}

	invoices, err := c.PostInvoices(ctx, InvoicesEnvelope{Invoices: []Invoice{c.NewInvoice(contactID, items, orderID, reference)}})
	if err != nil {
		return nil, errors.Wrap(err, "Client.CreateInvoice")
	}
	if len(invoices.Invoices) == 0 {
		return nil, errors.New("Client.CreateInvoice empty response")
	}

	created := invoices.Invoices[0]
	log.Info().Str("invoice_id", created.InvoiceID).Str("invoice_number", created.InvoiceNumber).Msg("Created ledger invoice")
	return &created, nil
}

// UpdateInvoiceReference replaces only the reference of an existing invoice.
func (c *Client) UpdateInvoiceReference(ctx context.Context, invoiceID, reference string) (*Invoice, error) {
	if invoiceID == "" {
		return nil, errors.New("Client.UpdateInvoiceReference invoice id is required")
	}

	invoices, err := c.PostInvoices(ctx, InvoicesEnvelope{Invoices: []Invoice{{InvoiceID: invoiceID, Reference: reference}}})
	if err != nil {
		return nil, errors.Wrap(err, "Client.UpdateInvoiceReference")
	}
	if len(invoices.Invoices) == 0 {
		return &Invoice{InvoiceID: invoiceID, Reference: reference}, nil
	}
	return &invoices.Invoices[0], nil
}

// GetInvoiceByOrderID returns (nil, nil) when no invoice exists for the order.
func (c *Client) GetInvoiceByOrderID(ctx context.Context, orderID string) (*Invoice, error) {
	query := url.Values{}
	query.Set("InvoiceNumbers", c.InvoiceNumber(orderID))

	var out InvoicesEnvelope
	if err := c.do(ctx, http.MethodGet, "/Invoices", query, nil, &out); err != nil {
		return nil, errors.Wrap(err, "Client.GetInvoiceByOrderID")
	}
	if len(out.Invoices) == 0 {
		return nil, nil
	}
	return &out.Invoices[0], nil
}

// ListInvoices returns one page of invoices. Pages start at 1.
func (c *Client) ListInvoices(ctx context.Context, page int) ([]Invoice, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var out InvoicesEnvelope
	if err := c.do(ctx, http.MethodGet, "/Invoices", query, nil, &out); err != nil {
		return nil, errors.Wrap(err, "Client.ListInvoices")
	}
	return out.Invoices, nil
}

// PostInvoices sends an invoices envelope as-is. Xero treats entries carrying an
// InvoiceID as updates.
func (c *Client) PostInvoices(ctx context.Context, invoices InvoicesEnvelope) (*InvoicesEnvelope, error) {
	var out InvoicesEnvelope
	if err := c.do(ctx, http.MethodPost, "/Invoices", nil, invoices, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
