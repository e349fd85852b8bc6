package address

import (
	"context"
	"math"
	"strings"

	"github.com/rolloffco/rolloff/internal/domain"
)

// AreaSource lists all configured service areas, including those without a
// local tax rate.
type AreaSource interface {
	ListServiceAreas(ctx context.Context) ([]domain.ServiceArea, error)
}

// Config holds the distance thresholds, in miles.
type Config struct {
	InAreaMiles      float64
	SurroundingMiles float64
}

// RadiusValidator classifies a delivery point by haversine distance to the
// nearest service area. Queries without coordinates fall back to keyword
// matching against area names and aliases.
type RadiusValidator struct {
	areas AreaSource
	cfg   Config
}

// NewRadiusValidator creates the production validator.
func NewRadiusValidator(areas AreaSource, cfg Config) *RadiusValidator {
	return &RadiusValidator{areas: areas, cfg: cfg}
}

// Check implements Validator.
func (v *RadiusValidator) Check(ctx context.Context, q Query) (*Result, error) {
	areas, err := v.areas.ListServiceAreas(ctx)
	if err != nil {
		return nil, domain.Internal(err, "address.check", "failed to load service areas")
	}
	if len(areas) == 0 {
		return &Result{Classification: OutOfArea}, nil
	}

	if !q.HasCoordinates() {
		return v.checkByKeyword(areas, q.Address), nil
	}

	nearest := areas[0]
	best := math.MaxFloat64
	for _, area := range areas {
		d := haversineMiles(q.Latitude, q.Longitude, area.Latitude, area.Longitude)
		if d < best {
			best = d
			nearest = area
		}
	}

	result := &Result{
		NearestArea:   nearest.Name,
		DistanceMiles: best,
	}
	switch {
	case best <= v.cfg.InAreaMiles:
		result.Classification = InArea
	case best <= v.cfg.SurroundingMiles:
		result.Classification = Surrounding
	default:
		result.Classification = OutOfArea
	}
	return result, nil
}

// checkByKeyword is the coordinate-free fallback: a named area appearing in
// the address text counts as in-area.
func (v *RadiusValidator) checkByKeyword(areas []domain.ServiceArea, addr string) *Result {
	haystack := strings.ToLower(addr)
	for _, area := range areas {
		if strings.Contains(haystack, strings.ToLower(area.Name)) {
			return &Result{Classification: InArea, NearestArea: area.Name}
		}
		for _, alias := range area.Aliases {
			if alias != "" && strings.Contains(haystack, strings.ToLower(alias)) {
				return &Result{Classification: InArea, NearestArea: area.Name}
			}
		}
	}
	return &Result{Classification: OutOfArea}
}

const earthRadiusMiles = 3958.8

// haversineMiles is the great-circle distance between two points.
func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const rad = math.Pi / 180

	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}
