package billing

import (
	"context"

	"github.com/google/uuid"
)

// MockProvider is a test implementation of Provider.
type MockProvider struct {
	CreateCheckoutSessionFunc func(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	GetCheckoutSessionFunc    func(ctx context.Context, sessionID string) (*CheckoutSession, error)
	CreateCustomerFunc        func(ctx context.Context, params CreateCustomerParams) (*Customer, error)
	CreateFollowUpIntentFunc  func(ctx context.Context, params FollowUpIntentParams) (*PaymentIntent, error)
}

// CreateCheckoutSession delegates to the configured function or returns a
// canned session.
func (m *MockProvider) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, params)
	}
	return &CheckoutSession{
		ID:  "cs_test_" + uuid.NewString(),
		URL: "https://checkout.stripe.test/session",
		Metadata: map[string]string{
			MetadataPendingOrderID: params.PendingOrderID.String(),
		},
	}, nil
}

// GetCheckoutSession delegates to the configured function or returns a
// completed session.
func (m *MockProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if m.GetCheckoutSessionFunc != nil {
		return m.GetCheckoutSessionFunc(ctx, sessionID)
	}
	return &CheckoutSession{ID: sessionID, Status: "complete"}, nil
}

// CreateCustomer delegates to the configured function or returns a canned
// customer.
func (m *MockProvider) CreateCustomer(ctx context.Context, params CreateCustomerParams) (*Customer, error) {
	if m.CreateCustomerFunc != nil {
		return m.CreateCustomerFunc(ctx, params)
	}
	return &Customer{ID: "cus_test_" + uuid.NewString(), Email: params.Email, Name: params.Name}, nil
}

// CreateFollowUpIntent delegates to the configured function or returns a
// canned intent.
func (m *MockProvider) CreateFollowUpIntent(ctx context.Context, params FollowUpIntentParams) (*PaymentIntent, error) {
	if m.CreateFollowUpIntentFunc != nil {
		return m.CreateFollowUpIntentFunc(ctx, params)
	}
	return &PaymentIntent{
		ID:           "pi_test_" + uuid.NewString(),
		ClientSecret: "pi_test_secret",
		Status:       "requires_payment_method",
		AmountCents:  params.AmountCents,
	}, nil
}
