package service

import (
	"context"
	"testing"

	"github.com/rolloffco/rolloff/internal/address"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/tax"
)

func quoteFixture() CheckoutService {
	return NewCheckoutService(
		tax.NewFixedCalculator(0.0485, 0.02),
		&address.MockValidator{},
		&mockDumpsterTypeStore{},
		domain.InsurancePrices{DrivewayCents: 4000, CancellationCents: 2500, RushCents: 7500},
		testLogger(),
	)
}

func TestQuote_ComposesCartAndInsurance(t *testing.T) {
	svc := quoteFixture()

	draft := domain.DraftOrder{
		Cart:      domain.CartInfo{Quantity: 1, PriceCents: 34000},
		Insurance: domain.InsuranceSelection{Driveway: true},
		Delivery:  domain.DeliveryInfo{Address: "Provo UT"},
	}

	quote, err := svc.Quote(context.Background(), draft)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}

	if quote.CartCents != 34000 {
		t.Errorf("cart = %d, want 34000", quote.CartCents)
	}
	if quote.InsuranceCents != 4000 {
		t.Errorf("insurance = %d, want 4000", quote.InsuranceCents)
	}
	if quote.SubtotalCents != 38000 {
		t.Errorf("subtotal = %d, want 38000", quote.SubtotalCents)
	}
	// 38000 * 0.0685 = 2603
	if quote.TaxCents != 2603 {
		t.Errorf("tax = %d, want 2603", quote.TaxCents)
	}
	if quote.TotalCents != quote.SubtotalCents+quote.TaxCents {
		t.Errorf("total %d != subtotal %d + tax %d", quote.TotalCents, quote.SubtotalCents, quote.TaxCents)
	}
}

func TestQuote_AllInsuranceSelected(t *testing.T) {
	svc := quoteFixture()

	draft := domain.DraftOrder{
		Cart:      domain.CartInfo{Quantity: 2, PriceCents: 30000},
		Insurance: domain.InsuranceSelection{Driveway: true, Cancellation: true, Rush: true},
	}

	quote, err := svc.Quote(context.Background(), draft)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if quote.InsuranceCents != 14000 {
		t.Errorf("insurance = %d, want 14000", quote.InsuranceCents)
	}
	if quote.SubtotalCents != 74000 {
		t.Errorf("subtotal = %d, want 74000", quote.SubtotalCents)
	}
}

func TestAdvance_DelegatesToWizard(t *testing.T) {
	svc := quoteFixture()

	draft := domain.DraftOrder{Customer: domain.CustomerInfo{
		FirstName: "Dana", LastName: "Fisher", Email: "dana@example.com", Phone: "801-555-0101",
	}}
	next, errs := svc.Advance(context.Background(), domain.StageCustomer, draft)
	if len(errs) != 0 {
		t.Fatalf("unexpected stage errors: %v", errs)
	}
	if next != domain.StageDelivery {
		t.Errorf("next = %q, want delivery", next)
	}

	if back := svc.Back(context.Background(), next); back != domain.StageCustomer {
		t.Errorf("back = %q, want customer", back)
	}
}
