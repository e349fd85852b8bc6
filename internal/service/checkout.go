package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/address"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/tax"
)

// CheckoutService drives the booking wizard: stage navigation, quoting and
// serviceability checks. The wizard state itself lives in the browser; this
// service is stateless.
type CheckoutService interface {
	// Advance validates the current stage and returns the next one, or the
	// same stage plus field errors.
	Advance(ctx context.Context, stage domain.Stage, draft domain.DraftOrder) (domain.Stage, map[string]string)

	// Back returns the previous stage without validation.
	Back(ctx context.Context, stage domain.Stage) domain.Stage

	// Quote prices the draft: cart subtotal plus insurance add-ons, taxed
	// against the delivery address.
	Quote(ctx context.Context, draft domain.DraftOrder) (*Quote, error)

	// CheckServiceability classifies the delivery point against the
	// configured service areas.
	CheckServiceability(ctx context.Context, q address.Query) (*address.Result, error)

	// ListDumpsterTypes returns the rentable catalog for the cart stage.
	ListDumpsterTypes(ctx context.Context) ([]domain.DumpsterType, error)
}

// Quote is the priced view of a draft order shown on the review stages.
type Quote struct {
	CartCents      int64   `json:"cart_amount"`
	InsuranceCents int64   `json:"insurance_amount"`
	SubtotalCents  int64   `json:"subtotal_amount"`
	TaxCents       int64   `json:"tax_amount"`
	TotalCents     int64   `json:"total_amount"`
	TaxRate        float64 `json:"tax_rate"`
	MatchedArea    string  `json:"matched_area,omitempty"`
}

// DumpsterTypeStore is the catalog read side consumed by checkout.
type DumpsterTypeStore interface {
	List(ctx context.Context, activeOnly bool) ([]domain.DumpsterType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DumpsterType, error)
	GetDefault(ctx context.Context) (*domain.DumpsterType, error)
}

type checkoutService struct {
	taxCalculator   tax.Calculator
	addrValidator   address.Validator
	dumpsterTypes   DumpsterTypeStore
	insurancePrices domain.InsurancePrices
	logger          *slog.Logger
}

// NewCheckoutService creates the wizard service.
func NewCheckoutService(
	taxCalculator tax.Calculator,
	addrValidator address.Validator,
	dumpsterTypes DumpsterTypeStore,
	insurancePrices domain.InsurancePrices,
	logger *slog.Logger,
) CheckoutService {
	return &checkoutService{
		taxCalculator:   taxCalculator,
		addrValidator:   addrValidator,
		dumpsterTypes:   dumpsterTypes,
		insurancePrices: insurancePrices,
		logger:          logger.With("component", "checkout"),
	}
}

func (s *checkoutService) Advance(ctx context.Context, stage domain.Stage, draft domain.DraftOrder) (domain.Stage, map[string]string) {
	return domain.Advance(stage, draft)
}

func (s *checkoutService) Back(ctx context.Context, stage domain.Stage) domain.Stage {
	return domain.Back(stage)
}

func (s *checkoutService) Quote(ctx context.Context, draft domain.DraftOrder) (*Quote, error) {
	cartCents := draft.Cart.SubtotalCents()
	insuranceCents := draft.Insurance.TotalCents(s.insurancePrices)
	subtotal := cartCents + insuranceCents

	result, err := s.taxCalculator.Calculate(ctx, subtotal, draft.Delivery.Address)
	if err != nil {
		// The area calculator resolves internally to a fallback rate, so an
		// error here is a programming mistake, not a data problem.
		return nil, domain.Internal(err, "checkout.quote", "failed to calculate tax")
	}

	return &Quote{
		CartCents:      cartCents,
		InsuranceCents: insuranceCents,
		SubtotalCents:  result.SubtotalCents,
		TaxCents:       result.TaxCents,
		TotalCents:     result.TotalCents,
		TaxRate:        result.Rate,
		MatchedArea:    result.MatchedArea,
	}, nil
}

func (s *checkoutService) CheckServiceability(ctx context.Context, q address.Query) (*address.Result, error) {
	return s.addrValidator.Check(ctx, q)
}

func (s *checkoutService) ListDumpsterTypes(ctx context.Context) ([]domain.DumpsterType, error) {
	return s.dumpsterTypes.List(ctx, true)
}
