package square

import "fmt"

// PaymentMethod is the tender of an order. The concrete types are CardPayment,
// CashPayment, OtherPayment, UnknownPayment and NoPayment.
type PaymentMethod interface {
	// Reference is the text written to the invoice reference.
	Reference() string
	isPaymentMethod()
}

type CardPayment struct {
	Brand string
	Last4 string
}

type CashPayment struct{}

type OtherPayment struct{}

// UnknownPayment is any tender type without a dedicated variant.
type UnknownPayment struct {
	Type string
}

// NoPayment is an order without tenders.
type NoPayment struct{}

func (p CardPayment) Reference() string {
	brand := p.Brand
	if brand == "" {
		brand = TenderCard
	}
	return fmt.Sprintf("Square %s ****%s", brand, p.Last4)
}

func (CashPayment) Reference() string      { return "Square Cash" }
func (OtherPayment) Reference() string     { return "EXTERNAL" }
func (p UnknownPayment) Reference() string { return "Square " + p.Type }
func (NoPayment) Reference() string        { return "Square" }

func (CardPayment) isPaymentMethod()    {}
func (CashPayment) isPaymentMethod()    {}
func (OtherPayment) isPaymentMethod()   {}
func (UnknownPayment) isPaymentMethod() {}
func (NoPayment) isPaymentMethod()      {}

// PaymentMethodOf classifies the first tender of order.
// A card tender without card details is reported as UnknownPayment{Type: "CARD"}.
func PaymentMethodOf(order *Order) PaymentMethod {
	if order == nil || len(order.Tenders) == 0 {
		return NoPayment{}
	}

	tender := order.Tenders[0]
	switch tender.Type {
	case TenderCard:
		if tender.CardDetails != nil && tender.CardDetails.Card != nil {
			return CardPayment{Brand: tender.CardDetails.Card.CardBrand, Last4: tender.CardDetails.Card.Last4}
		}
	case TenderCash:
		return CashPayment{}
	case TenderOther:
		return OtherPayment{}
	}
	return UnknownPayment{Type: tender.Type}
}

// TenderReference is the invoice reference describing how order was paid.
func TenderReference(order *Order) string {
	return PaymentMethodOf(order).Reference()
}
