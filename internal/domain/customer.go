package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer-related domain errors.
var (
	ErrCustomerNotFound = &Error{Code: ENOTFOUND, Message: "Customer not found"}
)

// Customer is a person or business that has completed at least one booking.
// Email is a soft unique key: lookups are case-insensitive on the trimmed
// address, but uniqueness is not DB-enforced.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Business  bool      `json:"business"`

	// StripeCustomerID is set at most once, on creation when the payment
	// session carries one, or backfilled on a later order.
	StripeCustomerID string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasStripeCustomer reports whether a follow-up charge is possible.
func (c Customer) HasStripeCustomer() bool {
	return c.StripeCustomerID != ""
}
