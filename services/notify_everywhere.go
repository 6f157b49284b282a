package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rs/zerolog/log"
)

// Notifier tells the agency about a new contact message on one channel.
type Notifier interface {
	Name() string
	NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error
}

// NotifyEverywhere sends a contact message notification on every configured channel.
// A failing channel is logged and the rest are still attempted; the returned error lists
// every channel that failed.
type NotifyEverywhere struct {
	channels []Notifier
}

func NewNotifyEverywhere(channels ...Notifier) *NotifyEverywhere {
	return &NotifyEverywhere{channels: channels}
}

func (n *NotifyEverywhere) Name() string {
	return "everywhere"
}

// Enabled reports whether any channel is configured.
func (n *NotifyEverywhere) Enabled() bool {
	return n != nil && len(n.channels) > 0
}

func (n *NotifyEverywhere) NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error {
	var failures []string
	var successes []string

	for _, ch := range n.channels {
		if err := ch.NotifyContactMessage(ctx, msg); err != nil {
			log.Error().Err(err).Str("channel", ch.Name()).Str("messageId", msg.ID.String()).Msg("Failed to send contact notification")
			failures = append(failures, fmt.Sprintf("%s: %v", ch.Name(), err))
			continue
		}
		successes = append(successes, ch.Name())
	}

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Str("messageId", msg.ID.String()).Msg("Contact notification sent")
	}
	if len(failures) > 0 {
		return fmt.Errorf("some channels failed: %s", strings.Join(failures, "; "))
	}
	return nil
}

func contactSummary(msg models.ContactMessage) string {
	return fmt.Sprintf("New contact message from %s %s <%s>: %s", msg.FirstName, msg.LastName, msg.Email, msg.Subject)
}
