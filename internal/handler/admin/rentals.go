package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/handler"
	"github.com/rolloffco/rolloff/internal/service"
)

// RentalHandler serves the dispatch side of the business: rental listings
// with derived status, operational updates, archival, and follow-up charges.
type RentalHandler struct {
	driver  service.DriverService
	charges service.ChargeService
	logger  *slog.Logger
}

func NewRentalHandler(driver service.DriverService, charges service.ChargeService, logger *slog.Logger) *RentalHandler {
	return &RentalHandler{
		driver:  driver,
		charges: charges,
		logger:  logger.With("component", "rental_handler"),
	}
}

// List returns rentals with derived status, newest first. Archived rentals
// are hidden unless ?include_archived=true.
func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	rentals, err := h.driver.ListRentals(r.Context(), includeArchived)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	rental, err := h.driver.GetRental(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, rental)
}

// updateRentalRequest carries the fields dispatch can change. Absent fields
// are left untouched.
type updateRentalRequest struct {
	Delivered    *bool      `json:"delivered"`
	DatePickedUp *time.Time `json:"date_picked_up"`
	DropWeight   *float64   `json:"drop_weight"`
	DaysDropped  *int32     `json:"days_dropped"`
	DumpsterID   *uuid.UUID `json:"dumpster_id"`
}

// Update merges an operational update into a rental. Entering a pickup date
// derives days dropped; recording a weight marks the rental picked up.
func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req updateRentalRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	rental, err := h.driver.UpdateRental(r.Context(), id, domain.OperationalUpdate{
		Delivered:    req.Delivered,
		DatePickedUp: req.DatePickedUp,
		DropWeight:   req.DropWeight,
		DaysDropped:  req.DaysDropped,
		DumpsterID:   req.DumpsterID,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, rental)
}

// Archive sets or clears the archived flag without destroying the record.
func (h *RentalHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req struct {
		Archived bool `json:"archived"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.driver.ArchiveRental(r.Context(), id, req.Archived); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete soft-deletes a rental. The row survives for bookkeeping but leaves
// every listing.
func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.driver.DeleteRental(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type chargeRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
}

// Charge creates an off-session payment intent against the rental's
// customer, for overage weight or damage after the fact. Requires the
// customer to have a saved payment method from the original checkout.
func (h *RentalHandler) Charge(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req chargeRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if req.AmountCents <= 0 {
		handler.ErrorResponse(w, r, domain.Invalid("rental.charge", "Charge amount must be positive"))
		return
	}

	intent, err := h.charges.ChargeFollowUp(r.Context(), id, req.AmountCents, req.Description)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, map[string]interface{}{
		"payment_intent_id": intent.ID,
		"client_secret":     intent.ClientSecret,
		"status":            intent.Status,
		"amount_cents":      intent.AmountCents,
	})
}
