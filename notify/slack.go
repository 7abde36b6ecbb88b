// Package notify reports failed syncs to a Slack channel.
package notify

import (
	"context"
	"fmt"

	"github.com/jrsteele09/pos-ledger-sync/reconcile"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// SlackPoster is the part of *slack.Client the notifier uses.
type SlackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var (
	_ SlackPoster        = (*slack.Client)(nil)
	_ reconcile.Notifier = (*SlackNotifier)(nil)
)

type SlackNotifier struct {
	client    SlackPoster
	channelID string
}

func NewSlackNotifier(client SlackPoster, channelID string) (*SlackNotifier, error) {
	if client == nil {
		return nil, errors.New("[NewSlackNotifier] slack client is required")
	}
	if channelID == "" {
		return nil, errors.New("[NewSlackNotifier] channel id is required")
	}
	return &SlackNotifier{client: client, channelID: channelID}, nil
}

// NotifyFailure posts a short summary of a failed outcome.
func (n *SlackNotifier) NotifyFailure(ctx context.Context, outcome reconcile.Outcome) error {
	text := fmt.Sprintf("Ledger sync failed for %s", outcome.EventType)
	if outcome.OrderID != "" {
		text = fmt.Sprintf("%s (order %s)", text, outcome.OrderID)
	}

	fields := []slack.AttachmentField{{Title: "Error", Value: errorText(outcome.Err)}}
	if outcome.ContactID != "" {
		fields = append(fields, slack.AttachmentField{Title: "Contact", Value: outcome.ContactID, Short: true})
	}
	if outcome.InvoiceID != "" {
		fields = append(fields, slack.AttachmentField{Title: "Invoice", Value: outcome.InvoiceID, Short: true})
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAttachments(slack.Attachment{Color: "danger", Fields: fields}),
	)
	if err != nil {
		return errors.Wrap(err, "SlackNotifier.NotifyFailure PostMessage")
	}
	return nil
}

func errorText(err error) string {
	if err == nil {
		return "unknown"
	}
	return err.Error()
}
