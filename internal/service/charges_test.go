package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/billing"
	"github.com/rolloffco/rolloff/internal/domain"
)

func TestChargeFollowUp_RequiresSavedCustomer(t *testing.T) {
	rentalID := uuid.New()
	customerID := uuid.New()

	rentals := &mockRentalStore{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
			return &domain.Rental{ID: rentalID, CustomerID: customerID}, nil
		},
	}
	customers := &mockCustomerStore{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
			return &domain.Customer{ID: customerID}, nil
		},
	}

	var intents int
	provider := &billing.MockProvider{
		CreateFollowUpIntentFunc: func(ctx context.Context, params billing.FollowUpIntentParams) (*billing.PaymentIntent, error) {
			intents++
			return &billing.PaymentIntent{ID: "pi_test"}, nil
		},
	}

	svc := NewChargeService(rentals, customers, provider, testLogger())
	_, err := svc.ChargeFollowUp(context.Background(), rentalID, 5000, "Overweight fee")
	if err != domain.ErrNoSavedPaymentMethod {
		t.Fatalf("ChargeFollowUp() error = %v, want ErrNoSavedPaymentMethod", err)
	}
	if intents != 0 {
		t.Errorf("created %d intents without a saved customer, want 0", intents)
	}
}

func TestChargeFollowUp_CreatesOffSessionIntent(t *testing.T) {
	rentalID := uuid.New()
	customerID := uuid.New()

	rentals := &mockRentalStore{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
			return &domain.Rental{ID: rentalID, CustomerID: customerID}, nil
		},
	}
	customers := &mockCustomerStore{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
			return &domain.Customer{ID: customerID, StripeCustomerID: "cus_saved"}, nil
		},
	}

	var params billing.FollowUpIntentParams
	provider := &billing.MockProvider{
		CreateFollowUpIntentFunc: func(ctx context.Context, p billing.FollowUpIntentParams) (*billing.PaymentIntent, error) {
			params = p
			return &billing.PaymentIntent{ID: "pi_test", ClientSecret: "secret", AmountCents: p.AmountCents}, nil
		},
	}

	svc := NewChargeService(rentals, customers, provider, testLogger())
	intent, err := svc.ChargeFollowUp(context.Background(), rentalID, 5000, "Overweight fee")
	if err != nil {
		t.Fatalf("ChargeFollowUp() error = %v", err)
	}

	if params.StripeCustomerID != "cus_saved" {
		t.Errorf("stripe customer = %q, want cus_saved", params.StripeCustomerID)
	}
	if params.AmountCents != 5000 || params.Description != "Overweight fee" {
		t.Errorf("params = %+v", params)
	}
	if params.Metadata["rental_id"] != rentalID.String() {
		t.Errorf("metadata rental_id = %q, want %v", params.Metadata["rental_id"], rentalID)
	}
	if intent.ID != "pi_test" || intent.ClientSecret == "" {
		t.Errorf("intent = %+v", intent)
	}
}
