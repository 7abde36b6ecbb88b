package square

import "github.com/jrsteele09/pos-ledger-sync/money"

// Webhook event types handled by the sync.
const (
	EventOrderCreated   = "order.created"
	EventPaymentCreated = "payment.created"
	EventPaymentUpdated = "payment.updated"
)

// Tender types as reported on an order.
const (
	TenderCard  = "CARD"
	TenderCash  = "CASH"
	TenderOther = "OTHER"
)

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (m *Money) ToMoney() money.Money {
	if m == nil {
		return money.Money{}
	}
	return money.FromCents(m.Amount, m.Currency)
}

type OrderLineItem struct {
	UID             string `json:"uid,omitempty"`
	Name            string `json:"name,omitempty"`
	VariationName   string `json:"variation_name,omitempty"`
	Quantity        string `json:"quantity"`
	CatalogObjectID string `json:"catalog_object_id,omitempty"`
	BasePriceMoney  *Money `json:"base_price_money,omitempty"`
	TotalMoney      *Money `json:"total_money,omitempty"`
}

type Card struct {
	CardBrand string `json:"card_brand,omitempty"`
	Last4     string `json:"last_4,omitempty"`
}

type TenderCardDetails struct {
	Status string `json:"status,omitempty"`
	Card   *Card  `json:"card,omitempty"`
}

type Tender struct {
	ID          string             `json:"id,omitempty"`
	Type        string             `json:"type"`
	AmountMoney *Money             `json:"amount_money,omitempty"`
	CardDetails *TenderCardDetails `json:"card_details,omitempty"`
}

type Order struct {
	ID         string          `json:"id"`
	LocationID string          `json:"location_id,omitempty"`
	CustomerID string          `json:"customer_id,omitempty"`
	State      string          `json:"state,omitempty"`
	CreatedAt  string          `json:"created_at,omitempty"`
	LineItems  []OrderLineItem `json:"line_items,omitempty"`
	Tenders    []Tender        `json:"tenders,omitempty"`
	TotalMoney *Money          `json:"total_money,omitempty"`
}

type Customer struct {
	ID           string `json:"id"`
	GivenName    string `json:"given_name,omitempty"`
	FamilyName   string `json:"family_name,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Event is a webhook notification. Only the fields the sync reads are decoded.
type Event struct {
	MerchantID string    `json:"merchant_id,omitempty"`
	Type       string    `json:"type"`
	EventID    string    `json:"event_id,omitempty"`
	CreatedAt  string    `json:"created_at,omitempty"`
	Data       EventData `json:"data"`
}

type EventData struct {
	Type   string      `json:"type,omitempty"`
	ID     string      `json:"id,omitempty"`
	Object EventObject `json:"object"`
}

type EventObject struct {
	OrderCreated *OrderCreated `json:"order_created,omitempty"`
	Payment      *Payment      `json:"payment,omitempty"`
}

type OrderCreated struct {
	OrderID    string `json:"order_id"`
	LocationID string `json:"location_id,omitempty"`
	State      string `json:"state,omitempty"`
	Version    int    `json:"version,omitempty"`
}

type Payment struct {
	ID          string `json:"id,omitempty"`
	OrderID     string `json:"order_id"`
	Status      string `json:"status,omitempty"`
	AmountMoney *Money `json:"amount_money,omitempty"`
}

// OrderID returns the order the event refers to, or "" when the payload carries none.
func (e Event) OrderID() string {
	switch {
	case e.Data.Object.OrderCreated != nil:
		return e.Data.Object.OrderCreated.OrderID
	case e.Data.Object.Payment != nil:
		return e.Data.Object.Payment.OrderID
	}
	return ""
}

type orderEnvelope struct {
	Order *Order `json:"order"`
}

type customerEnvelope struct {
	Customer *Customer `json:"customer"`
}

type searchOrdersRequest struct {
	LocationIDs []string          `json:"location_ids"`
	Limit       int               `json:"limit"`
	Query       searchOrdersQuery `json:"query"`
}

type searchOrdersQuery struct {
	Sort searchOrdersSort `json:"sort"`
}

type searchOrdersSort struct {
	SortField string `json:"sort_field"`
	SortOrder string `json:"sort_order"`
}

type searchOrdersResponse struct {
	Orders []Order `json:"orders"`
}
