package tax

import (
	"context"
)

// Calculator defines the interface for tax calculation.
// Implementations: AreaCalculator, FixedCalculator
type Calculator interface {
	// Calculate computes state plus local tax for a subtotal delivered to a
	// free-text address. Returns amounts in cents. Implementations must
	// resolve lookup failures to a fallback rate rather than returning an
	// error that would block checkout.
	Calculate(ctx context.Context, subtotalCents int64, deliveryAddress string) (*Result, error)
}

// Result contains the calculated tax and its breakdown.
type Result struct {
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64

	// Rate is the combined state plus local fraction applied.
	Rate      float64
	Breakdown Breakdown

	// MatchedArea is the name of the service area whose local rate was
	// used, empty when the fallback rate applied.
	MatchedArea string
}

// Breakdown splits the applied rate by jurisdiction.
type Breakdown struct {
	StateRate float64
	LocalRate float64
}
