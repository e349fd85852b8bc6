package tax

import (
	"context"
	"math"
)

// FixedCalculator applies a single flat rate with no area matching.
// Used for tests and for deployments with one jurisdiction.
type FixedCalculator struct {
	StateRate float64
	LocalRate float64
}

// NewFixedCalculator creates a flat-rate calculator.
func NewFixedCalculator(stateRate, localRate float64) *FixedCalculator {
	return &FixedCalculator{StateRate: stateRate, LocalRate: localRate}
}

// Calculate implements Calculator.
func (c *FixedCalculator) Calculate(ctx context.Context, subtotalCents int64, deliveryAddress string) (*Result, error) {
	rate := c.StateRate + c.LocalRate
	taxCents := int64(math.Round(float64(subtotalCents) * rate))
	return &Result{
		SubtotalCents: subtotalCents,
		TaxCents:      taxCents,
		TotalCents:    subtotalCents + taxCents,
		Rate:          rate,
		Breakdown:     Breakdown{StateRate: c.StateRate, LocalRate: c.LocalRate},
	}, nil
}
