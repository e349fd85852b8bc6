package tax

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/rolloffco/rolloff/internal/domain"
)

// AreaSource lists the service areas eligible for tax matching, i.e. those
// with a non-null local rate.
type AreaSource interface {
	ListTaxableAreas(ctx context.Context) ([]domain.ServiceArea, error)
}

// Config carries the fixed state rate and the local fallback applied when no
// area matches.
type Config struct {
	StateRate        float64
	DefaultLocalRate float64
}

// AreaCalculator resolves the local rate by substring-matching service-area
// names (and aliases) against the lowercased delivery address. First match
// wins; no match falls back to the first configured area, then to the
// default local rate. Matching is deliberately forgiving, political-boundary
// names rather than geocoding; an address mentioning an unrelated area name
// can mismatch.
type AreaCalculator struct {
	areas  AreaSource
	cfg    Config
	logger *slog.Logger
}

// NewAreaCalculator creates the production calculator.
func NewAreaCalculator(areas AreaSource, cfg Config, logger *slog.Logger) *AreaCalculator {
	return &AreaCalculator{
		areas:  areas,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "tax")),
	}
}

// Calculate implements Calculator. Lookup failures never propagate; they
// resolve to the fallback rate and are logged.
func (c *AreaCalculator) Calculate(ctx context.Context, subtotalCents int64, deliveryAddress string) (*Result, error) {
	localRate := c.cfg.DefaultLocalRate
	matched := ""

	areas, err := c.areas.ListTaxableAreas(ctx)
	switch {
	case err != nil:
		c.logger.Warn("service area lookup failed, using fallback local rate",
			slog.String("error", err.Error()),
			slog.Float64("local_rate", localRate))
	case len(areas) == 0:
		c.logger.Warn("no taxable service areas configured, using fallback local rate",
			slog.Float64("local_rate", localRate))
	default:
		if area, ok := matchArea(areas, deliveryAddress); ok {
			localRate = *area.LocalTaxRate
			matched = area.Name
		} else {
			// No substring hit: first configured area stands in.
			localRate = *areas[0].LocalTaxRate
			c.logger.Debug("no service area matched address, using first configured area",
				slog.String("area", areas[0].Name))
		}
	}

	rate := c.cfg.StateRate + localRate
	taxCents := roundCents(float64(subtotalCents) * rate)

	return &Result{
		SubtotalCents: subtotalCents,
		TaxCents:      taxCents,
		TotalCents:    subtotalCents + taxCents,
		Rate:          rate,
		Breakdown: Breakdown{
			StateRate: c.cfg.StateRate,
			LocalRate: localRate,
		},
		MatchedArea: matched,
	}, nil
}

// matchArea returns the first area whose name or alias appears in the
// address, case-insensitively.
func matchArea(areas []domain.ServiceArea, address string) (domain.ServiceArea, bool) {
	haystack := strings.ToLower(address)
	for _, area := range areas {
		if area.LocalTaxRate == nil {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(area.Name)) {
			return area, true
		}
		for _, alias := range area.Aliases {
			if alias != "" && strings.Contains(haystack, strings.ToLower(alias)) {
				return area, true
			}
		}
	}
	return domain.ServiceArea{}, false
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
