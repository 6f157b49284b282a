package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// maxSMSBody keeps notifications within a few SMS segments.
const maxSMSBody = 480

// SMSSender is the part of the Twilio API the notifier uses.
type SMSSender interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSNotifier texts a short summary of each contact message.
type SMSNotifier struct {
	api  SMSSender
	from string
	to   []string
}

func NewTwilioSender(accountSID, authToken string) SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return client.Api
}

func NewSMSNotifier(api SMSSender, from string, to []string) *SMSNotifier {
	return &SMSNotifier{api: api, from: from, to: to}
}

func (n *SMSNotifier) Name() string {
	return "sms"
}

// NotifyContactMessage sends one SMS per recipient. The Twilio client takes no context, so
// cancellation is only checked between messages.
func (n *SMSNotifier) NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error {
	body := contactSummary(msg)
	if r := []rune(body); len(r) > maxSMSBody {
		body = string(r[:maxSMSBody-3]) + "..."
	}

	for _, to := range n.to {
		if err := ctx.Err(); err != nil {
			return err
		}
		params := &openapi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(n.from)
		params.SetBody(body)

		resp, err := n.api.CreateMessage(params)
		if err != nil {
			return fmt.Errorf("send sms to %s: %w", to, err)
		}
		if resp != nil && resp.Sid != nil {
			log.Debug().Str("sid", *resp.Sid).Msg("Contact notification SMS queued")
		}
	}
	return nil
}
