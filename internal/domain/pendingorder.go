package domain

import (
	"time"

	"github.com/google/uuid"
)

// PendingOrder is a durably staged, not-yet-confirmed booking snapshot,
// written immediately before handoff to the payment processor. Exactly one
// exists per in-flight attempt; confirmation deletes it after the Rental it
// spawns is durably created.
type PendingOrder struct {
	ID        uuid.UUID
	Customer  CustomerInfo
	Delivery  DeliveryInfo
	Insurance InsuranceSelection
	Cart      CartInfo

	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
	TaxRate       float64

	CreatedAt time.Time
}

// ConfirmedOrder is the reconciliation result returned to the browser after
// a completed payment session.
type ConfirmedOrder struct {
	RentalID      uuid.UUID `json:"rental_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	SubtotalCents int64     `json:"subtotal_amount"`
	TaxCents      int64     `json:"tax_amount"`
	TotalCents    int64     `json:"total_amount"`
}
