package routes

import (
	"github.com/rolloffco/rolloff/internal/router"
)

// RegisterAdminRoutes registers the operations dashboard API: rentals and
// dispatch, follow-up charges, the catalog, geography, and the contact
// inbox.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	// Rentals and dispatch
	r.Get("/admin/rentals", deps.RentalHandler.List)
	r.Get("/admin/rentals/{id}", deps.RentalHandler.Get)
	r.Patch("/admin/rentals/{id}", deps.RentalHandler.Update)
	r.Post("/admin/rentals/{id}/archive", deps.RentalHandler.Archive)
	r.Delete("/admin/rentals/{id}", deps.RentalHandler.Delete)
	r.Post("/admin/rentals/{id}/charges", deps.RentalHandler.Charge)

	// Catalog: size classes and physical units
	r.Get("/admin/dumpster-types", deps.DumpsterHandler.ListTypes)
	r.Post("/admin/dumpster-types", deps.DumpsterHandler.CreateType)
	r.Put("/admin/dumpster-types/{id}", deps.DumpsterHandler.UpdateType)
	r.Delete("/admin/dumpster-types/{id}", deps.DumpsterHandler.DeleteType)
	r.Get("/admin/dumpsters", deps.DumpsterHandler.ListUnits)
	r.Post("/admin/dumpsters", deps.DumpsterHandler.CreateUnit)
	r.Put("/admin/dumpsters/{id}", deps.DumpsterHandler.UpdateUnit)
	r.Delete("/admin/dumpsters/{id}", deps.DumpsterHandler.DeleteUnit)

	// Geography: tax matching and serviceability
	r.Get("/admin/service-areas", deps.ServiceAreaHandler.List)
	r.Get("/admin/service-areas/{id}", deps.ServiceAreaHandler.Get)
	r.Post("/admin/service-areas", deps.ServiceAreaHandler.Create)
	r.Put("/admin/service-areas/{id}", deps.ServiceAreaHandler.Update)
	r.Delete("/admin/service-areas/{id}", deps.ServiceAreaHandler.Delete)

	// Contact inbox
	r.Get("/admin/contact-messages", deps.ContactMessageHandler.List)
	r.Get("/admin/contact-messages/{id}", deps.ContactMessageHandler.Get)
	r.Post("/admin/contact-messages/{id}/status", deps.ContactMessageHandler.SetStatus)
}
