package routes

import (
	"github.com/rolloffco/rolloff/internal/router"
)

// RegisterAPIRoutes registers the public booking wizard and contact form.
func RegisterAPIRoutes(r *router.Router, deps APIDeps) {
	// Wizard navigation and pricing
	r.Post("/api/checkout/advance", deps.CheckoutHandler.Advance)
	r.Post("/api/checkout/back", deps.CheckoutHandler.Back)
	r.Post("/api/checkout/quote", deps.CheckoutHandler.Quote)
	r.Post("/api/checkout/serviceability", deps.CheckoutHandler.Serviceability)
	r.Get("/api/dumpster-types", deps.CheckoutHandler.DumpsterTypes)

	// Payment handoff and confirmation
	r.Post("/api/checkout/session", deps.CheckoutHandler.Stage)
	r.Get("/api/checkout/confirm", deps.CheckoutHandler.Confirm)

	// Contact form
	r.Post("/api/contact", deps.ContactHandler.Submit)
}
