package xero

// Xero contact, invoice and account payloads. Field names follow the Accounting API wire format.

type Phone struct {
	PhoneType   string `json:"PhoneType,omitempty"`
	PhoneNumber string `json:"PhoneNumber,omitempty"`
}

type Contact struct {
	ContactID     string  `json:"ContactID,omitempty"`
	ContactStatus string  `json:"ContactStatus,omitempty"`
	Name          string  `json:"Name,omitempty"`
	FirstName     string  `json:"FirstName,omitempty"`
	LastName      string  `json:"LastName,omitempty"`
	EmailAddress  string  `json:"EmailAddress,omitempty"`
	AccountNumber string  `json:"AccountNumber,omitempty"`
	Phones        []Phone `json:"Phones,omitempty"`
}

type LineItem struct {
	LineItemID  string  `json:"LineItemID,omitempty"`
	Description string  `json:"Description,omitempty"`
	Quantity    float64 `json:"Quantity"`
	UnitAmount  float64 `json:"UnitAmount"`
	AccountCode string  `json:"AccountCode,omitempty"`
	TaxType     string  `json:"TaxType,omitempty"`
	LineAmount  float64 `json:"LineAmount,omitempty"`
}

type Invoice struct {
	InvoiceID       string     `json:"InvoiceID,omitempty"`
	InvoiceNumber   string     `json:"InvoiceNumber,omitempty"`
	Type            string     `json:"Type,omitempty"`
	Contact         *Contact   `json:"Contact,omitempty"`
	LineItems       []LineItem `json:"LineItems,omitempty"`
	Date            string     `json:"Date,omitempty"`
	DueDate         string     `json:"DueDate,omitempty"`
	Status          string     `json:"Status,omitempty"`
	LineAmountTypes string     `json:"LineAmountTypes,omitempty"`
	Reference       string     `json:"Reference,omitempty"`
	CurrencyCode    string     `json:"CurrencyCode,omitempty"`
	Total           float64    `json:"Total,omitempty"`
	AmountDue       float64    `json:"AmountDue,omitempty"`
}

type Account struct {
	AccountID string `json:"AccountID,omitempty"`
	Code      string `json:"Code,omitempty"`
	Name      string `json:"Name,omitempty"`
	Type      string `json:"Type,omitempty"`
	Status    string `json:"Status,omitempty"`
	TaxType   string `json:"TaxType,omitempty"`
}

// Connection is a tenant the OAuth consent granted access to.
type Connection struct {
	ID          string `json:"id"`
	AuthEventID string `json:"authEventId"`
	TenantID    string `json:"tenantId"`
	TenantType  string `json:"tenantType"`
	TenantName  string `json:"tenantName"`
}

type ContactsEnvelope struct {
	Contacts []Contact `json:"Contacts"`
}

type InvoicesEnvelope struct {
	Invoices []Invoice `json:"Invoices"`
}

type AccountsEnvelope struct {
	Accounts []Account `json:"Accounts"`
}

const (
	invoiceTypeReceivable = "ACCREC"
	invoiceStatusApproved = "AUTHORISED"
	lineAmountsInclusive  = "Inclusive"
	phoneTypeMobile       = "MOBILE"
)
