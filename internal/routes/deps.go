package routes

import (
	"github.com/rolloffco/rolloff/internal/handler/admin"
	"github.com/rolloffco/rolloff/internal/handler/api"
	"github.com/rolloffco/rolloff/internal/handler/webhook"
)

// APIDeps contains handlers for the public booking and contact API.
type APIDeps struct {
	CheckoutHandler *api.CheckoutHandler
	ContactHandler  *api.ContactHandler
}

// AdminDeps contains handlers for the operations dashboard API. These
// routes sit behind the deployment's access controls; the application
// itself does not authenticate them.
type AdminDeps struct {
	RentalHandler         *admin.RentalHandler
	DumpsterHandler       *admin.DumpsterHandler
	ServiceAreaHandler    *admin.ServiceAreaHandler
	ContactMessageHandler *admin.ContactMessageHandler
}

// WebhookDeps contains handlers for incoming webhooks.
type WebhookDeps struct {
	StripeHandler *webhook.StripeHandler
}
