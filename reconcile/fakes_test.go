package reconcile_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/jrsteele09/pos-ledger-sync/reconcile"
	"github.com/jrsteele09/pos-ledger-sync/square"
	"github.com/jrsteele09/pos-ledger-sync/xero"
)

type fakeOrders struct {
	orders      map[string]*square.Order
	customers   map[string]*square.Customer
	orderErr    error
	customerErr error
}

func (f *fakeOrders) GetOrder(_ context.Context, orderID string) (*square.Order, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	o, ok := f.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	return o, nil
}

func (f *fakeOrders) GetCustomer(_ context.Context, customerID string) (*square.Customer, error) {
	if f.customerErr != nil {
		return nil, f.customerErr
	}
	c, ok := f.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("customer %s not found", customerID)
	}
	return c, nil
}

type createdInvoice struct {
	ContactID string
	Items     []xero.InvoiceItem
	OrderID   string
	Reference string
}

type fakeLedger struct {
	mu         sync.Mutex
	contacts   map[string]xero.Contact // Keyed by customer id
	invoices   map[string]xero.Invoice // Keyed by order id
	created    []createdInvoice
	updates    map[string]string
	lookupErr  error
	contactErr error
	createErr  error
	updateErr  error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		contacts: map[string]xero.Contact{},
		invoices: map[string]xero.Invoice{},
		updates:  map[string]string{},
	}
}

func (f *fakeLedger) FindOrCreateContact(_ context.Context, customer xero.Customer) (*xero.Contact, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.contactErr != nil {
		return nil, false, f.contactErr
	}
	if c, ok := f.contacts[customer.ID]; ok {
		return &c, false, nil
	}
	c := xero.NewContact(customer)
	c.ContactID = "contact-" + customer.ID
	f.contacts[customer.ID] = c
	return &c, true, nil
}

func (f *fakeLedger) CreateInvoice(_ context.Context, contactID string, items []xero.InvoiceItem, orderID, reference string) (*xero.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, createdInvoice{ContactID: contactID, Items: items, OrderID: orderID, Reference: reference})
	inv := xero.Invoice{InvoiceID: "invoice-" + orderID, InvoiceNumber: xero.InvoiceNumber("SQUARE", orderID), Reference: reference}
	f.invoices[orderID] = inv
	return &inv, nil
}

func (f *fakeLedger) UpdateInvoiceReference(_ context.Context, invoiceID, reference string) (*xero.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updates[invoiceID] = reference
	return &xero.Invoice{InvoiceID: invoiceID, Reference: reference}, nil
}

func (f *fakeLedger) GetInvoiceByOrderID(_ context.Context, orderID string) (*xero.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	inv, ok := f.invoices[orderID]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

type recordingNotifier struct {
	outcomes []reconcile.Outcome
	err      error
}

func (n *recordingNotifier) NotifyFailure(_ context.Context, outcome reconcile.Outcome) error {
	n.outcomes = append(n.outcomes, outcome)
	return n.err
}
