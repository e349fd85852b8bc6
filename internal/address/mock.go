package address

import (
	"context"
)

// MockValidator is a test implementation of Validator.
type MockValidator struct {
	CheckFunc func(ctx context.Context, q Query) (*Result, error)
}

// Check delegates to the configured function or reports in-area.
func (m *MockValidator) Check(ctx context.Context, q Query) (*Result, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, q)
	}
	return &Result{Classification: InArea}, nil
}
