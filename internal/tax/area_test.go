package tax

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAreaSource struct {
	ListTaxableAreasFunc func(ctx context.Context) ([]domain.ServiceArea, error)
}

func (m *mockAreaSource) ListTaxableAreas(ctx context.Context) ([]domain.ServiceArea, error) {
	return m.ListTaxableAreasFunc(ctx)
}

func rate(v float64) *float64 { return &v }

func testAreas() []domain.ServiceArea {
	return []domain.ServiceArea{
		{Name: "Provo", Aliases: []string{"provo city"}, LocalTaxRate: rate(0.02)},
		{Name: "Orem", LocalTaxRate: rate(0.018)},
		{Name: "Salt Lake City", Aliases: []string{"SLC", "salt lake"}, LocalTaxRate: rate(0.0125)},
	}
}

func newTestCalculator(areas []domain.ServiceArea, err error) *AreaCalculator {
	src := &mockAreaSource{
		ListTaxableAreasFunc: func(ctx context.Context) ([]domain.ServiceArea, error) {
			return areas, err
		},
	}
	cfg := Config{StateRate: 0.0485, DefaultLocalRate: 0.0165}
	return NewAreaCalculator(src, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAreaCalculator_MatchedArea(t *testing.T) {
	calc := newTestCalculator(testAreas(), nil)

	result, err := calc.Calculate(context.Background(), 34000, "455 N University Ave, Provo, UT 84601")
	require.NoError(t, err)

	assert.Equal(t, "Provo", result.MatchedArea)
	assert.InDelta(t, 0.0685, result.Rate, 1e-9)
	assert.Equal(t, int64(2329), result.TaxCents)
	assert.Equal(t, int64(36329), result.TotalCents)
	assert.Equal(t, 0.0485, result.Breakdown.StateRate)
	assert.Equal(t, 0.02, result.Breakdown.LocalRate)
}

func TestAreaCalculator_MatchIsCaseInsensitive(t *testing.T) {
	calc := newTestCalculator(testAreas(), nil)

	result, err := calc.Calculate(context.Background(), 10000, "123 MAIN ST, PROVO UT")
	require.NoError(t, err)
	assert.Equal(t, "Provo", result.MatchedArea)
}

func TestAreaCalculator_AliasMatch(t *testing.T) {
	calc := newTestCalculator(testAreas(), nil)

	result, err := calc.Calculate(context.Background(), 10000, "800 W Temple, SLC UT")
	require.NoError(t, err)
	assert.Equal(t, "Salt Lake City", result.MatchedArea)
	assert.InDelta(t, 0.0485+0.0125, result.Rate, 1e-9)
}

func TestAreaCalculator_FirstMatchWins(t *testing.T) {
	calc := newTestCalculator(testAreas(), nil)

	// Both Provo and Orem appear; the earlier configured area wins.
	result, err := calc.Calculate(context.Background(), 10000, "Provo-Orem metro area")
	require.NoError(t, err)
	assert.Equal(t, "Provo", result.MatchedArea)
}

func TestAreaCalculator_NoMatchUsesFirstConfiguredArea(t *testing.T) {
	calc := newTestCalculator(testAreas(), nil)

	result, err := calc.Calculate(context.Background(), 10000, "999 Nowhere Ln, Moab UT")
	require.NoError(t, err)

	assert.Empty(t, result.MatchedArea)
	assert.InDelta(t, 0.0485+0.02, result.Rate, 1e-9)
}

func TestAreaCalculator_LookupErrorFallsBack(t *testing.T) {
	calc := newTestCalculator(nil, errors.New("connection refused"))

	result, err := calc.Calculate(context.Background(), 10000, "Provo UT")
	require.NoError(t, err, "tax lookup failure must not block checkout")

	assert.Empty(t, result.MatchedArea)
	assert.InDelta(t, 0.0485+0.0165, result.Rate, 1e-9)
	assert.Equal(t, int64(650), result.TaxCents)
}

func TestAreaCalculator_NoAreasConfiguredFallsBack(t *testing.T) {
	calc := newTestCalculator([]domain.ServiceArea{}, nil)

	result, err := calc.Calculate(context.Background(), 20000, "anywhere")
	require.NoError(t, err)
	assert.InDelta(t, 0.065, result.Rate, 1e-9)
	assert.Equal(t, int64(1300), result.TaxCents)
}

func TestAreaCalculator_NilRateAreasSkipped(t *testing.T) {
	areas := []domain.ServiceArea{
		{Name: "Provo"}, // no local rate
		{Name: "Orem", LocalTaxRate: rate(0.018)},
	}
	calc := newTestCalculator(areas, nil)

	result, err := calc.Calculate(context.Background(), 10000, "Provo UT")
	require.NoError(t, err)
	assert.Empty(t, result.MatchedArea)
}

func TestAreaCalculator_TotalEqualsSubtotalPlusTax(t *testing.T) {
	calc := newTestCalculator(testAreas(), nil)

	for _, subtotal := range []int64{0, 1, 99, 30000, 34000, 123457} {
		result, err := calc.Calculate(context.Background(), subtotal, "Orem UT")
		require.NoError(t, err)
		assert.Equal(t, result.SubtotalCents+result.TaxCents, result.TotalCents,
			"subtotal %d", subtotal)
	}
}

func TestFixedCalculator(t *testing.T) {
	calc := NewFixedCalculator(0.0485, 0.0165)

	result, err := calc.Calculate(context.Background(), 10000, "ignored")
	require.NoError(t, err)
	assert.Equal(t, int64(650), result.TaxCents)
	assert.Equal(t, int64(10650), result.TotalCents)
}
