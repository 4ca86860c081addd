package services

import (
	"context"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier delivers a short text message to a customer phone
type Notifier interface {
	Notify(ctx context.Context, phone, message string) error
}

// NopNotifier drops every message. Used when no SMS gateway is configured.
type NopNotifier struct {
	log *slog.Logger
}

func NewNopNotifier(logger *slog.Logger) *NopNotifier {
	return &NopNotifier{log: logger}
}

func (n *NopNotifier) Notify(_ context.Context, phone, _ string) error {
	n.log.Debug("sms skipped, notifier disabled", "to", phone)
	return nil
}

// TwilioNotifier sends SMS through the Twilio messages API
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
	log    *slog.Logger
}

func NewTwilioNotifier(accountSID, authToken, from string, logger *slog.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
		log:  logger,
	}
}

func (n *TwilioNotifier) Notify(_ context.Context, phone, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(n.from)
	params.SetBody(message)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		n.log.Info("sms sent", "to", phone, "sid", *resp.Sid)
	}
	return nil
}
