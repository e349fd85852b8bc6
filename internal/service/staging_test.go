package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/address"
	"github.com/rolloffco/rolloff/internal/billing"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/tax"
)

func completeDraft() domain.DraftOrder {
	return domain.DraftOrder{
		Customer: domain.CustomerInfo{
			FirstName: "Dana",
			LastName:  "Fisher",
			Email:     "dana@example.com",
			Phone:     "801-555-0101",
		},
		Delivery: domain.DeliveryInfo{
			RequestedDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			Address:       "312 Center St, Provo, UT 84601",
		},
		Cart: domain.CartInfo{
			DumpsterTypeID: uuid.NewString(),
			Quantity:       1,
			PriceCents:     34000,
			Name:           "15 Yard Dumpster",
		},
		ContractAccepted: true,
	}
}

func newStagingFixture(pending *mockPendingOrderStore, provider *billing.MockProvider) StagingService {
	checkout := NewCheckoutService(
		tax.NewFixedCalculator(0.0485, 0.02),
		&address.MockValidator{},
		&mockDumpsterTypeStore{},
		domain.InsurancePrices{DrivewayCents: 4000, CancellationCents: 2500, RushCents: 7500},
		testLogger(),
	)
	return NewStagingService(pending, provider, checkout, StagingURLs{
		SuccessURL: "https://rolloff.test/checkout/confirm",
		CancelURL:  "https://rolloff.test/checkout/cancelled",
	}, testLogger())
}

func TestStage_PersistsThenCreatesSession(t *testing.T) {
	pending := &mockPendingOrderStore{}
	provider := &billing.MockProvider{}

	var staged *domain.PendingOrder
	pending.CreateFunc = func(ctx context.Context, po *domain.PendingOrder) (*domain.PendingOrder, error) {
		po.ID = uuid.New()
		staged = po
		return po, nil
	}

	var sessionParams billing.CheckoutSessionParams
	provider.CreateCheckoutSessionFunc = func(ctx context.Context, params billing.CheckoutSessionParams) (*billing.CheckoutSession, error) {
		sessionParams = params
		return &billing.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
	}

	svc := newStagingFixture(pending, provider)
	result, err := svc.Stage(context.Background(), completeDraft())
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	if staged == nil {
		t.Fatal("expected a pending order to be staged")
	}
	if staged.TotalCents != staged.SubtotalCents+staged.TaxCents {
		t.Errorf("total %d != subtotal %d + tax %d", staged.TotalCents, staged.SubtotalCents, staged.TaxCents)
	}
	if sessionParams.PendingOrderID != staged.ID {
		t.Errorf("session pending order id = %v, want %v", sessionParams.PendingOrderID, staged.ID)
	}
	if sessionParams.AmountCents != staged.TotalCents {
		t.Errorf("session amount = %d, want %d", sessionParams.AmountCents, staged.TotalCents)
	}
	if result.CheckoutURL == "" || result.SessionID != "cs_test_1" {
		t.Errorf("unexpected handoff result: %+v", result)
	}
}

func TestStage_PersistFailureAbortsBeforeSession(t *testing.T) {
	pending := &mockPendingOrderStore{
		CreateFunc: func(ctx context.Context, po *domain.PendingOrder) (*domain.PendingOrder, error) {
			return nil, domain.Internal(errors.New("connection refused"), "pending_order.create", "failed to stage pending order")
		},
	}

	var sessionCalls int
	provider := &billing.MockProvider{
		CreateCheckoutSessionFunc: func(ctx context.Context, params billing.CheckoutSessionParams) (*billing.CheckoutSession, error) {
			sessionCalls++
			return &billing.CheckoutSession{ID: "cs_never"}, nil
		},
	}

	svc := newStagingFixture(pending, provider)
	if _, err := svc.Stage(context.Background(), completeDraft()); err == nil {
		t.Fatal("Stage() expected error when persistence fails")
	}
	if sessionCalls != 0 {
		t.Errorf("payment session created %d times despite persist failure, want 0", sessionCalls)
	}
}

func TestStage_SessionFailureLeavesPendingOrder(t *testing.T) {
	var staged *domain.PendingOrder
	var deleted bool
	pending := &mockPendingOrderStore{
		CreateFunc: func(ctx context.Context, po *domain.PendingOrder) (*domain.PendingOrder, error) {
			po.ID = uuid.New()
			staged = po
			return po, nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	provider := &billing.MockProvider{
		CreateCheckoutSessionFunc: func(ctx context.Context, params billing.CheckoutSessionParams) (*billing.CheckoutSession, error) {
			return nil, errors.New("stripe unavailable")
		},
	}

	svc := newStagingFixture(pending, provider)
	if _, err := svc.Stage(context.Background(), completeDraft()); err == nil {
		t.Fatal("Stage() expected error when session creation fails")
	}
	if staged == nil {
		t.Fatal("expected the pending order to have been staged")
	}
	if deleted {
		t.Error("pending order was deleted after session failure, want it left in place")
	}
}

func TestStage_IncompleteDraftRejected(t *testing.T) {
	pending := &mockPendingOrderStore{}
	provider := &billing.MockProvider{}

	draft := completeDraft()
	draft.Customer.Phone = ""

	var persisted int
	pending.CreateFunc = func(ctx context.Context, po *domain.PendingOrder) (*domain.PendingOrder, error) {
		persisted++
		return po, nil
	}

	svc := newStagingFixture(pending, provider)
	_, err := svc.Stage(context.Background(), draft)
	if err == nil {
		t.Fatal("Stage() expected validation error for missing phone")
	}
	fields := domain.GetValidationFields(err)
	if _, ok := fields["phone"]; !ok {
		t.Errorf("validation fields = %v, want phone error", fields)
	}
	if persisted != 0 {
		t.Errorf("persisted %d pending orders for an invalid draft, want 0", persisted)
	}
}
