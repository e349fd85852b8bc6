package routes

import (
	"github.com/rolloffco/rolloff/internal/router"
)

// RegisterWebhookRoutes registers incoming webhook routes.
//
// Webhook routes carry no middleware. Each handler verifies the request
// signature itself (e.g. Stripe signature verification).
func RegisterWebhookRoutes(r *router.Router, deps WebhookDeps) {
	r.Post("/webhooks/stripe", deps.StripeHandler.HandleWebhook)
}
