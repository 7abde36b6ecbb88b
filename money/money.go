// Package money holds integer minor-unit amounts as reported by the POS.
package money

import (
	"fmt"
	"strings"
)

// Money represents a monetary value in the smallest currency unit.
// Arithmetic stays in integers; conversion to a decimal happens only at the ledger boundary.
type Money struct {
	Amount   int64  `json:"amount"`   // Smallest unit (cents)
	Currency string `json:"currency"` // ISO 4217, upper case as Square reports it
}

// FromCents creates a Money value from an amount in cents.
func FromCents(cents int64, currency string) Money {
	return Money{Amount: cents, Currency: strings.ToUpper(currency)}
}

// Decimal returns the amount in major units, e.g. 5000 cents -> 50.00.
func (m Money) Decimal() float64 {
	return float64(m.Amount) / 100
}

// String formats the value with two decimal places, e.g. "50.00 AUD".
func (m Money) String() string {
	sign := ""
	amount := m.Amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	value := fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
	if m.Currency == "" {
		return value
	}
	return value + " " + m.Currency
}
