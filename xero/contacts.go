package xero

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/pos-ledger-sync/internal/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	legacyAccountPrefix = "SQ-"
	maxPhoneLength      = 50
)

// Customer is the commerce-side identity a contact is reconciled against.
type Customer struct {
	ID           string
	GivenName    string
	FamilyName   string
	EmailAddress string
	PhoneNumber  string
}

func legacyAccountNumber(customerID string) string {
	return legacyAccountPrefix + customerID
}

// FindOrCreateContact returns the contact linked to customer, creating one only when no
// match exists. Matches are tried in order: account number equal to the customer id,
// the legacy "SQ-" account number, then exact email. Display names are never compared.
// The boolean result reports whether a contact was created.
func (c *Client) FindOrCreateContact(ctx context.Context, customer Customer) (*Contact, bool, error) {
	if customer.ID != "" {
		contact, err := c.findContact(ctx, "AccountNumber", customer.ID)
		if err != nil {
			return nil, false, err
		}
		if contact != nil {
			return contact, false, nil
		}

		contact, err = c.findContact(ctx, "AccountNumber", legacyAccountNumber(customer.ID))
		if err != nil {
			return nil, false, err
		}
		if contact != nil {
			c.patchAccountNumber(ctx, contact.ContactID, customer.ID)
			return contact, false, nil
		}
	}

	if customer.EmailAddress != "" {
		contact, err := c.findContact(ctx, "EmailAddress", customer.EmailAddress)
		if err != nil {
			return nil, false, err
		}
		if contact != nil {
			if customer.ID != "" && (contact.AccountNumber == "" || contact.AccountNumber == legacyAccountNumber(customer.ID)) {
				c.patchAccountNumber(ctx, contact.ContactID, customer.ID)
			}
			return contact, false, nil
		}
	}

	contact, err := c.CreateContact(ctx, NewContact(customer))
	if err != nil {
		return nil, false, err
	}
	return contact, true, nil
}

// NewContact builds the create payload for a customer that has no ledger contact yet.
func NewContact(customer Customer) Contact {
	name := customer.EmailAddress
	if name == "" {
		id := customer.ID
		if id == "" {
			id = "no-id"
		}
		name = fmt.Sprintf("Square [%s]", id)
	}

	contact := Contact{
		Name:          name,
		FirstName:     customer.GivenName,
		LastName:      customer.FamilyName,
		EmailAddress:  customer.EmailAddress,
		AccountNumber: customer.ID,
	}
	if customer.PhoneNumber != "" {
		contact.Phones = []Phone{{
			PhoneType:   phoneTypeMobile,
			PhoneNumber: utils.Truncate(utils.DigitsOnly(customer.PhoneNumber), maxPhoneLength),
		}}
	}
	return contact
}

// CreateContact posts a single contact and returns the stored version.
func (c *Client) CreateContact(ctx context.Context, contact Contact) (*Contact, error) {
	var out ContactsEnvelope
	if err := c.do(ctx, http.MethodPost, "/Contacts", nil, ContactsEnvelope{Contacts: []Contact{contact}}, &out); err != nil {
		return nil, errors.Wrap(err, "Client.CreateContact")
	}
	if len(out.Contacts) == 0 {
		return nil, errors.New("Client.CreateContact empty response")
	}
	log.Info().Str("contact_id", out.Contacts[0].ContactID).Str("account_number", contact.AccountNumber).Msg("Created ledger contact")
	return &out.Contacts[0], nil
}

// GetContact fetches a contact by its ledger id.
func (c *Client) GetContact(ctx context.Context, contactID string) (*Contact, error) {
	var out ContactsEnvelope
	if err := c.do(ctx, http.MethodGet, "/Contacts/"+url.PathEscape(contactID), nil, nil, &out); err != nil {
		return nil, errors.Wrap(err, "Client.GetContact")
	}
	if len(out.Contacts) == 0 {
		return nil, nil
	}
	return &out.Contacts[0], nil
}

// ListContacts returns up to limit contacts from the first page.
func (c *Client) ListContacts(ctx context.Context, limit int) ([]Contact, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(1))

	var out ContactsEnvelope
	if err := c.do(ctx, http.MethodGet, "/Contacts", query, nil, &out); err != nil {
		return nil, errors.Wrap(err, "Client.ListContacts")
	}
	if limit > 0 && len(out.Contacts) > limit {
		return out.Contacts[:limit], nil
	}
	return out.Contacts, nil
}

func (c *Client) findContact(ctx context.Context, field, value string) (*Contact, error) {
	var out ContactsEnvelope
	if err := c.do(ctx, http.MethodGet, "/Contacts", whereEquals(field, value), nil, &out); err != nil {
		return nil, errors.Wrapf(err, "Client.findContact %s", field)
	}
	if len(out.Contacts) == 0 {
		return nil, nil
	}
	return &out.Contacts[0], nil
}

// patchAccountNumber links an existing contact to the customer id. Failures are logged only.
func (c *Client) patchAccountNumber(ctx context.Context, contactID, accountNumber string) {
	patch := ContactsEnvelope{Contacts: []Contact{{ContactID: contactID, AccountNumber: accountNumber}}}
	if err := c.do(ctx, http.MethodPost, "/Contacts", nil, patch, nil); err != nil {
		log.Err(err).Str("contact_id", contactID).Msg("Failed to update contact account number")
		return
	}
	log.Info().Str("contact_id", contactID).Str("account_number", accountNumber).Msg("Updated contact account number")
}
