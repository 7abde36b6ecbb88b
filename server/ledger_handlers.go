package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "github.com/jrsteele09/pos-ledger-sync/internal/errors"
	"github.com/jrsteele09/pos-ledger-sync/square"
	"github.com/jrsteele09/pos-ledger-sync/xero"
)

const (
	defaultCustomerLimit = 5
	maxAdminBody         = 1 << 20
)

func (s *Server) ListInvoicesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := intParam(r, "page", 1)
		if err != nil {
			writeJSONError(w, "invalid_request", "page must be a number", http.StatusBadRequest)
			return
		}

		invoices, err := s.ledger.ListInvoices(r.Context(), page)
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, xero.InvoicesEnvelope{Invoices: invoices})
	}
}

// CreateInvoiceHandler posts an invoices envelope to the ledger unchanged.
func (s *Server) CreateInvoiceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body xero.InvoicesEnvelope
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBody)).Decode(&body); err != nil {
			writeJSONError(w, "invalid_request", "body must be an Invoices envelope", http.StatusBadRequest)
			return
		}
		if len(body.Invoices) == 0 {
			writeJSONError(w, "invalid_request", "at least one invoice is required", http.StatusBadRequest)
			return
		}

		created, err := s.ledger.PostInvoices(r.Context(), body)
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, created)
	}
}

func (s *Server) ListCustomersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := intParam(r, "limit", defaultCustomerLimit)
		if err != nil || limit < 1 {
			writeJSONError(w, "invalid_request", "limit must be a positive number", http.StatusBadRequest)
			return
		}

		contacts, err := s.ledger.ListContacts(r.Context(), limit)
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, xero.ContactsEnvelope{Contacts: contacts})
	}
}

func (s *Server) GetCustomerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contact, err := s.ledger.GetContact(r.Context(), r.PathValue("id"))
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		if contact == nil {
			writeJSONError(w, "not_found", "contact not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, contact)
	}
}

// CreateCustomerHandler reconciles a commerce-shaped customer into a ledger contact,
// creating it only when no match exists.
func (s *Server) CreateCustomerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var customer square.Customer
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBody)).Decode(&customer); err != nil {
			writeJSONError(w, "invalid_request", "body must be a customer", http.StatusBadRequest)
			return
		}
		if customer.ID == "" && customer.EmailAddress == "" {
			writeLedgerError(w, r, apperrors.Wrapf(apperrors.ErrInvalidRequest, "customer id or email_address is required"))
			return
		}

		contact, created, err := s.ledger.FindOrCreateContact(r.Context(), xero.Customer{
			ID:           customer.ID,
			GivenName:    customer.GivenName,
			FamilyName:   customer.FamilyName,
			EmailAddress: customer.EmailAddress,
			PhoneNumber:  customer.PhoneNumber,
		})
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, map[string]any{"contact": contact, "created": created})
	}
}

// ListAccountsHandler returns the chart of accounts, narrowed to ?code= when it matches.
func (s *Server) ListAccountsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := s.ledger.ListAccounts(r.Context())
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, xero.AccountsEnvelope{Accounts: xero.FilterAccounts(accounts, r.URL.Query().Get("code"))})
	}
}

// LatestOrderHandler shows the newest order at the configured location with its customer.
func (s *Server) LatestOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		order, err := s.orders.LatestOrder(ctx, s.config.GetSquareLocationID())
		if err != nil {
			writeLedgerError(w, r, err)
			return
		}
		if order == nil {
			writeJSON(w, http.StatusOK, map[string]string{"message": "No orders found"})
			return
		}

		var customer *square.Customer
		if order.CustomerID != "" {
			customer, err = s.orders.GetCustomer(ctx, order.CustomerID)
			if err != nil {
				writeLedgerError(w, r, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"order":     order,
			"customer":  customer,
			"reference": square.TenderReference(order),
		})
	}
}

func intParam(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}
