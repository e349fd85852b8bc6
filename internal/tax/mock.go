package tax

import (
	"context"
)

// MockCalculator is a test implementation of Calculator.
type MockCalculator struct {
	CalculateFunc func(ctx context.Context, subtotalCents int64, deliveryAddress string) (*Result, error)
}

// Calculate delegates to the configured function or returns a zero-tax
// result.
func (m *MockCalculator) Calculate(ctx context.Context, subtotalCents int64, deliveryAddress string) (*Result, error) {
	if m.CalculateFunc != nil {
		return m.CalculateFunc(ctx, subtotalCents, deliveryAddress)
	}
	return &Result{
		SubtotalCents: subtotalCents,
		TotalCents:    subtotalCents,
	}, nil
}
