package address

import "context"

// Classification buckets a delivery point by distance from the nearest
// service area.
type Classification string

const (
	InArea      Classification = "in_area"
	Surrounding Classification = "surrounding"
	OutOfArea   Classification = "out_of_area"
)

// Query describes a delivery location to check. Coordinates are preferred;
// when absent (both zero), implementations fall back to matching the address
// text against service-area keywords.
type Query struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// HasCoordinates reports whether the query carries a usable lat/lon pair.
func (q Query) HasCoordinates() bool {
	return q.Latitude != 0 || q.Longitude != 0
}

// Result is the serviceability decision for a delivery point.
type Result struct {
	Classification Classification
	NearestArea    string
	DistanceMiles  float64
}

// Serviceable reports whether delivery can be offered at all.
func (r Result) Serviceable() bool {
	return r.Classification != OutOfArea
}

// Validator decides whether an address is deliverable. Used for gating the
// booking flow, never for tax: tax matching follows political boundary
// names, serviceability follows physical distance.
type Validator interface {
	Check(ctx context.Context, q Query) (*Result, error)
}
