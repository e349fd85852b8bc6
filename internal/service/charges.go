package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/billing"
	"github.com/rolloffco/rolloff/internal/domain"
)

// ChargeService bills extras against a completed rental: overweight fees,
// extra days, damage. Off-session, so it requires a saved processor
// customer from the original checkout.
type ChargeService interface {
	ChargeFollowUp(ctx context.Context, rentalID uuid.UUID, amountCents int64, description string) (*billing.PaymentIntent, error)
}

type chargeService struct {
	rentals   RentalStore
	customers CustomerStore
	billing   billing.Provider
	logger    *slog.Logger
}

// NewChargeService creates the follow-up billing service.
func NewChargeService(rentals RentalStore, customers CustomerStore, billingProvider billing.Provider, logger *slog.Logger) ChargeService {
	return &chargeService{
		rentals:   rentals,
		customers: customers,
		billing:   billingProvider,
		logger:    logger.With("component", "charges"),
	}
}

func (s *chargeService) ChargeFollowUp(ctx context.Context, rentalID uuid.UUID, amountCents int64, description string) (*billing.PaymentIntent, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.GetByID(ctx, rental.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.HasStripeCustomer() {
		return nil, domain.ErrNoSavedPaymentMethod
	}

	intent, err := s.billing.CreateFollowUpIntent(ctx, billing.FollowUpIntentParams{
		StripeCustomerID: customer.StripeCustomerID,
		AmountCents:      amountCents,
		Description:      description,
		Metadata: map[string]string{
			"rental_id":   rentalID.String(),
			"customer_id": customer.ID.String(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create follow-up charge: %w", err)
	}

	s.logger.Info("follow-up charge created",
		"rental_id", rentalID,
		"customer_id", customer.ID,
		"amount_cents", amountCents,
		"payment_intent_id", intent.ID,
	)
	return intent, nil
}
