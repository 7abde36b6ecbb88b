// Package reconcile turns commerce webhook events into ledger contacts and invoices.
package reconcile

import (
	"context"

	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/jrsteele09/pos-ledger-sync/square"
	"github.com/jrsteele09/pos-ledger-sync/xero"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PendingPaymentReference marks an invoice created before its payment is known.
const PendingPaymentReference = "Square (Pending Payment)"

// OrderSource reads orders and customers from the commerce platform.
type OrderSource interface {
	GetOrder(ctx context.Context, orderID string) (*square.Order, error)
	GetCustomer(ctx context.Context, customerID string) (*square.Customer, error)
}

// Ledger is the accounting side of the sync.
type Ledger interface {
	FindOrCreateContact(ctx context.Context, customer xero.Customer) (*xero.Contact, bool, error)
	CreateInvoice(ctx context.Context, contactID string, items []xero.InvoiceItem, orderID, reference string) (*xero.Invoice, error)
	UpdateInvoiceReference(ctx context.Context, invoiceID, reference string) (*xero.Invoice, error)
	GetInvoiceByOrderID(ctx context.Context, orderID string) (*xero.Invoice, error)
}

// Notifier is told about failed outcomes.
type Notifier interface {
	NotifyFailure(ctx context.Context, outcome Outcome) error
}

var (
	_ OrderSource = (*square.Client)(nil)
	_ Ledger      = (*xero.Client)(nil)
)

type Service struct {
	orders   OrderSource
	ledger   Ledger
	allow    square.Allowlist
	notifier Notifier
}

type ServiceOption func(*Service)

func WithNotifier(n Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

func NewService(orders OrderSource, ledger Ledger, allow square.Allowlist, options ...ServiceOption) (*Service, error) {
	if orders == nil {
		return nil, errors.New("[NewService] order source is required")
	}
	if ledger == nil {
		return nil, errors.New("[NewService] ledger is required")
	}
	if len(allow) == 0 {
		return nil, errors.New("[NewService] at least one billable item is required")
	}

	s := &Service{orders: orders, ledger: ledger, allow: allow}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// HandleEvent runs the sync for one event and reports what happened.
// Unknown event types are ignored. Failed outcomes are passed to the notifier.
func (s *Service) HandleEvent(ctx context.Context, event square.Event) Outcome {
	outcome := Outcome{EventType: event.Type, EventID: event.EventID, OrderID: event.OrderID()}

	switch event.Type {
	case square.EventOrderCreated:
		outcome = s.orderCreated(ctx, outcome)
	case square.EventPaymentCreated, square.EventPaymentUpdated:
		outcome = s.paymentChanged(ctx, outcome)
	default:
		outcome.Action = ActionIgnored
		return outcome
	}

	if outcome.Failed() && s.notifier != nil {
		if err := s.notifier.NotifyFailure(ctx, outcome); err != nil {
			log.Err(err).Str("order_id", outcome.OrderID).Msg("Failed to send sync failure notification")
		}
	}
	return outcome
}

// orderCreated invoices the billable lines of a new order with a pending payment reference.
// An existing invoice for the order is left untouched.
func (s *Service) orderCreated(ctx context.Context, outcome Outcome) Outcome {
	if outcome.OrderID == "" {
		return outcome.fail(errors.Wrap(apperrors.ErrInvalidRequest, "event carries no order id"))
	}

	order, err := s.orders.GetOrder(ctx, outcome.OrderID)
	if err != nil {
		return outcome.fail(err)
	}

	lines := square.ExtractLineItems(order, s.allow)
	if len(lines) == 0 {
		return outcome.skip("no billable items")
	}
	if order.CustomerID == "" {
		return outcome.skip("order has no customer")
	}

	existing, err := s.ledger.GetInvoiceByOrderID(ctx, outcome.OrderID)
	if err != nil {
		return outcome.fail(err)
	}
	if existing != nil {
		outcome.InvoiceID = existing.InvoiceID
		return outcome.skip("order already invoiced")
	}

	customer, err := s.orders.GetCustomer(ctx, order.CustomerID)
	if err != nil {
		return outcome.fail(err)
	}

	contact, created, err := s.ledger.FindOrCreateContact(ctx, ledgerCustomer(customer))
	if err != nil {
		return outcome.fail(err)
	}
	outcome.ContactID = contact.ContactID
	outcome.ContactCreated = created

	invoice, err := s.ledger.CreateInvoice(ctx, contact.ContactID, invoiceItems(lines), outcome.OrderID, PendingPaymentReference)
	if err != nil {
		return outcome.fail(err)
	}

	outcome.Action = ActionInvoiceCreated
	outcome.InvoiceID = invoice.InvoiceID
	outcome.Reference = PendingPaymentReference
	return outcome
}

// paymentChanged writes the tender description to the order's invoice, if there is one.
func (s *Service) paymentChanged(ctx context.Context, outcome Outcome) Outcome {
	if outcome.OrderID == "" {
		return outcome.skip("payment has no order")
	}

	invoice, err := s.ledger.GetInvoiceByOrderID(ctx, outcome.OrderID)
	if err != nil {
		return outcome.fail(err)
	}
	if invoice == nil {
		return outcome.skip("no invoice for order")
	}
	outcome.InvoiceID = invoice.InvoiceID

	order, err := s.orders.GetOrder(ctx, outcome.OrderID)
	if err != nil {
		return outcome.fail(err)
	}

	reference := square.TenderReference(order)
	if _, err := s.ledger.UpdateInvoiceReference(ctx, invoice.InvoiceID, reference); err != nil {
		return outcome.fail(err)
	}

	outcome.Action = ActionReferenceUpdated
	outcome.Reference = reference
	return outcome
}

func ledgerCustomer(c *square.Customer) xero.Customer {
	return xero.Customer{
		ID:           c.ID,
		GivenName:    c.GivenName,
		FamilyName:   c.FamilyName,
		EmailAddress: c.EmailAddress,
		PhoneNumber:  c.PhoneNumber,
	}
}

func invoiceItems(lines []square.LineItem) []xero.InvoiceItem {
	items := make([]xero.InvoiceItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, xero.InvoiceItem{
			Description:  l.Description,
			VariantLabel: l.VariantLabel,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
		})
	}
	return items
}
