package reconcile

import "github.com/rs/zerolog"

// Action is what handling an event did.
type Action string

const (
	ActionIgnored          Action = "ignored"
	ActionSkipped          Action = "skipped"
	ActionInvoiceCreated   Action = "invoice_created"
	ActionReferenceUpdated Action = "reference_updated"
	ActionFailed           Action = "failed"
)

// Outcome is the result of handling one webhook event. Failures are carried in Err,
// never returned.
type Outcome struct {
	EventType      string
	EventID        string
	OrderID        string
	Action         Action
	Reason         string
	InvoiceID      string
	ContactID      string
	ContactCreated bool
	Reference      string
	Err            error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// MarshalZerologObject lets an outcome be logged with zerolog's Object field.
func (o Outcome) MarshalZerologObject(e *zerolog.Event) {
	e.Str("event_type", o.EventType).
		Str("action", string(o.Action))
	if o.EventID != "" {
		e.Str("event_id", o.EventID)
	}
	if o.OrderID != "" {
		e.Str("order_id", o.OrderID)
	}
	if o.Reason != "" {
		e.Str("reason", o.Reason)
	}
	if o.InvoiceID != "" {
		e.Str("invoice_id", o.InvoiceID)
	}
	if o.ContactID != "" {
		e.Str("contact_id", o.ContactID).Bool("contact_created", o.ContactCreated)
	}
	if o.Reference != "" {
		e.Str("reference", o.Reference)
	}
}

func (o Outcome) skip(reason string) Outcome {
	o.Action = ActionSkipped
	o.Reason = reason
	return o
}

func (o Outcome) fail(err error) Outcome {
	o.Action = ActionFailed
	o.Err = err
	return o
}
