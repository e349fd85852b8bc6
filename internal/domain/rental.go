package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rental-related domain errors.
var (
	ErrRentalNotFound       = &Error{Code: ENOTFOUND, Message: "Rental not found"}
	ErrPendingOrderNotFound = &Error{Code: ENOTFOUND, Message: "Pending order not found"}
	ErrNoSavedPaymentMethod = &Error{Code: EPAYMENT, Message: "Customer has no saved payment method"}
)

// PaymentStatus tracks the payment lifecycle of a rental.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// RentalState is the derived operational state of a rental. It is computed,
// never stored.
type RentalState string

const (
	StateOrdered      RentalState = "ordered"
	StateNeedsDropOff RentalState = "needs_drop_off"
	StateActive       RentalState = "active"
	StateCompleted    RentalState = "completed"
)

// needsDropOffWindow is how close to the requested delivery date a rental
// moves from ordered to needs-drop-off.
const needsDropOffWindow = 48 * time.Hour

// Rental is the confirmed, durable record of a booking. Created once at
// payment confirmation; operational fields are mutated later by dispatch.
type Rental struct {
	ID             uuid.UUID `json:"id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	DumpsterTypeID uuid.UUID `json:"dumpster_type_id"`

	// DumpsterID is nil until dispatch assigns a physical unit.
	DumpsterID *uuid.UUID `json:"dumpster_id"`

	DeliveryAddress       string    `json:"delivery_address"`
	DeliveryDateRequested time.Time `json:"delivery_date_requested"`

	// PostalCode is a denormalized convenience field extracted from the
	// free-text address; it plays no part in tax or serviceability.
	PostalCode string `json:"postal_code"`

	DrivewayInsurance     bool `json:"driveway_insurance"`
	CancellationInsurance bool `json:"cancellation_insurance"`
	RushDelivery          bool `json:"rush_delivery"`

	Delivered    bool       `json:"delivered"`
	PickedUp     bool       `json:"picked_up"`
	DatePickedUp *time.Time `json:"date_picked_up"`
	DropWeight   *float64   `json:"drop_weight"`
	DaysDropped  *int32     `json:"days_dropped"`

	PaymentStatus   PaymentStatus `json:"payment_status"`
	SubtotalCents   int64         `json:"subtotal_amount"`
	TaxCents        int64         `json:"tax_amount"`
	TotalCents      int64         `json:"total_amount"`
	TaxRate         float64       `json:"tax_rate"`
	StripeSessionID string        `json:"-"`

	Archived bool `json:"archived"`
	Deleted  bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status derives the operational state of a rental at a point in time.
// Single source for status badges and dumpster in-use checks.
func Status(r Rental, now time.Time) RentalState {
	if r.PickedUp {
		return StateCompleted
	}
	if r.Delivered {
		return StateActive
	}
	if !r.DeliveryDateRequested.IsZero() && r.DeliveryDateRequested.Sub(now) <= needsDropOffWindow {
		return StateNeedsDropOff
	}
	return StateOrdered
}

// InUse reports whether the physical unit linked to r is out with a customer.
func InUse(r Rental) bool {
	return Status(r, time.Now()) == StateActive
}

// DeriveDaysDropped computes the whole-day span between the requested
// delivery date and the pickup date. The second return is false when the
// span is negative, in which case the field is left for manual entry.
func DeriveDaysDropped(delivery, pickup time.Time) (int32, bool) {
	if delivery.IsZero() || pickup.IsZero() {
		return 0, false
	}
	days := int32(pickup.Sub(delivery).Hours() / 24)
	if pickup.Before(delivery) {
		return 0, false
	}
	return days, true
}

// OperationalUpdate carries the fields dispatch can change on a rental.
// Nil pointers mean "leave unchanged".
type OperationalUpdate struct {
	Delivered    *bool
	DatePickedUp *time.Time
	DropWeight   *float64
	DaysDropped  *int32
	DumpsterID   *uuid.UUID
}

// ApplyOperationalUpdate merges an update into a rental, deriving dependent
// fields. Entering a pickup date auto-fills days dropped when the span is
// non-negative. A positive drop weight marks the rental picked up whether or
// not a pickup date was entered.
func ApplyOperationalUpdate(r Rental, u OperationalUpdate) Rental {
	if u.Delivered != nil {
		r.Delivered = *u.Delivered
	}
	if u.DumpsterID != nil {
		r.DumpsterID = u.DumpsterID
	}
	if u.DatePickedUp != nil {
		t := *u.DatePickedUp
		r.DatePickedUp = &t
		if days, ok := DeriveDaysDropped(r.DeliveryDateRequested, t); ok {
			r.DaysDropped = &days
		}
	}
	if u.DaysDropped != nil {
		// Manual entry wins over the derived value.
		r.DaysDropped = u.DaysDropped
	}
	if u.DropWeight != nil {
		w := *u.DropWeight
		r.DropWeight = &w
		if w > 0 {
			r.PickedUp = true
		}
	}
	return r
}
