package webhook

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/rolloffco/rolloff/internal/billing"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/handler"
	"github.com/rolloffco/rolloff/internal/service"
	"github.com/stripe/stripe-go/v84"
)

// maxPayloadBytes bounds webhook bodies; Stripe events are small.
const maxPayloadBytes = 1 << 20

// StripeHandler confirms paid checkout sessions delivered by Stripe's
// webhook. It is the reliable path; the browser success redirect races it
// and whichever arrives first wins.
type StripeHandler struct {
	confirm       service.ConfirmService
	webhookSecret string
	logger        *slog.Logger
}

func NewStripeHandler(confirm service.ConfirmService, webhookSecret string, logger *slog.Logger) *StripeHandler {
	return &StripeHandler{
		confirm:       confirm,
		webhookSecret: webhookSecret,
		logger:        logger.With("component", "stripe_webhook"),
	}
}

// HandleWebhook verifies and dispatches incoming Stripe events. Any event
// this application does not act on is acknowledged and dropped; returning
// an error would only make Stripe retry something we ignore.
func (h *StripeHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("webhook.stripe", "Error reading request body"))
		return
	}

	event, err := billing.ReadWebhookEvent(r, payload, h.webhookSecret)
	if err != nil {
		h.logger.Warn("webhook signature rejected", "error", err)
		handler.ErrorResponse(w, r, domain.Errorf(domain.EUNAUTHORIZED, "webhook.stripe", "Invalid signature"))
		return
	}

	h.logger.Info("stripe event received", "type", event.Type, "event_id", event.ID)

	switch event.Type {
	case "checkout.session.completed":
		h.handleSessionCompleted(r, event)
	default:
		h.logger.Debug("ignoring stripe event", "type", event.Type)
	}

	// Acknowledge receipt; Stripe retries anything else.
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"received": true}`))
}

// handleSessionCompleted finalizes the pending order named in the session
// metadata. A missing pending order means the success redirect already
// confirmed it, which is the expected race, not a failure.
func (h *StripeHandler) handleSessionCompleted(r *http.Request, event *stripe.Event) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		h.logger.Error("failed to parse checkout session", "event_id", event.ID, "error", err)
		return
	}

	raw := sess.Metadata[billing.MetadataPendingOrderID]
	if raw == "" {
		h.logger.Warn("session missing pending order metadata", "session_id", sess.ID)
		return
	}
	pendingOrderID, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Error("malformed pending order id in session metadata", "session_id", sess.ID, "value", raw)
		return
	}

	order, err := h.confirm.Confirm(r.Context(), pendingOrderID, sess.ID)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			h.logger.Info("pending order already confirmed", "pending_order_id", pendingOrderID, "session_id", sess.ID)
			return
		}
		h.logger.Error("failed to confirm order from webhook",
			"pending_order_id", pendingOrderID,
			"session_id", sess.ID,
			"error", err,
		)
		return
	}

	h.logger.Info("order confirmed from webhook",
		"rental_id", order.RentalID,
		"pending_order_id", pendingOrderID,
		"total_amount", order.TotalCents,
	)
}
