package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Provider defines the interface for payment processing.
// Implementations can use Stripe, Square, etc.
type Provider interface {
	// CreateCheckoutSession creates a hosted checkout session for a staged
	// pending order. The pending-order id travels in session metadata for
	// reconciliation.
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)

	// GetCheckoutSession retrieves a session by id, used at confirmation to
	// resolve the processor's customer identifier.
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// CreateCustomer creates a customer record in the billing provider.
	// Used to back follow-up charges against a saved payment method.
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (*Customer, error)

	// CreateFollowUpIntent creates an off-session payment intent against a
	// stored customer, for overage and damage charges after the rental.
	CreateFollowUpIntent(ctx context.Context, params FollowUpIntentParams) (*PaymentIntent, error)
}

// CheckoutSessionParams contains everything the processor needs to host a
// payment page for one pending order.
type CheckoutSessionParams struct {
	PendingOrderID  uuid.UUID
	AmountCents     int64
	ProductName     string
	Quantity        int64
	CustomerEmail   string
	CustomerName    string
	DeliveryAddress string
	DeliveryDate    time.Time
	SuccessURL      string
	CancelURL       string
}

// CheckoutSession is the subset of the processor's session this application
// reads.
type CheckoutSession struct {
	ID              string
	URL             string
	Status          string
	CustomerID      string
	CustomerEmail   string
	PaymentIntentID string
	Metadata        map[string]string
}

// MetadataPendingOrderID is the session metadata key carrying the
// pending-order id.
const MetadataPendingOrderID = "pending_order_id"

// CreateCustomerParams contains parameters for creating a customer.
type CreateCustomerParams struct {
	Email    string
	Name     string
	Phone    string
	Metadata map[string]string
}

// Customer represents a billing customer.
type Customer struct {
	ID    string
	Email string
	Name  string
}

// FollowUpIntentParams contains parameters for an off-session charge.
type FollowUpIntentParams struct {
	StripeCustomerID string
	AmountCents      int64
	Description      string
	Metadata         map[string]string
}

// PaymentIntent represents a payment intent returned to the caller.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
}
