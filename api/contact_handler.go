package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/agency-site-backend/database"
	"github.com/rpupo63/agency-site-backend/metrics"
	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rpupo63/agency-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	contactThanksMessage = "Thank you for your message! We will get back to you soon."
	notificationTimeout  = 30 * time.Second
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	repo      database.Repository[models.ContactMessage]
	notifier  services.Notifier
}

func newContactHandler(repo *database.ContactMessageRepo, notifier services.Notifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		repo:      repo,
		notifier:  notifier,
	}
}

// submitMessage stores a contact form submission
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body models.ContactMessageInput true "Contact form"
// @Success 200 {object} ContactResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /api/contact [post]
func (h contactHandler) submitMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.ContactMessageInput
		if err := decodeJSONBody(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := models.Validate(&in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg := in.ToModel()
		if err := h.repo.Create(r.Context(), &msg); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		metrics.ContactMessagesTotal.Inc()
		h.logger.Info().
			Str("messageId", msg.ID.String()).
			Str("subject", msg.Subject).
			Msg("New contact message")

		if h.notifier != nil {
			go h.notify(msg)
		}

		h.responder.WriteJSON(w, ContactResponse{
			Success: true,
			Message: contactThanksMessage,
			ID:      msg.ID.String(),
		})
	}
}

// notify runs detached from the request, bounded by its own timeout.
func (h contactHandler) notify(msg models.ContactMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	if err := h.notifier.NotifyContactMessage(ctx, msg); err != nil {
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		h.logger.Error().Err(err).Str("messageId", msg.ID.String()).Msg("Failed to notify about contact message")
		return
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
}

// listMessages returns every contact message, oldest first
// @Summary List contact messages
// @Description Admin only.
// @Tags Contact
// @Produce json
// @Success 200 {array} models.ContactMessage
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/contact [get]
func (h contactHandler) listMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.repo.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, messages)
	}
}
