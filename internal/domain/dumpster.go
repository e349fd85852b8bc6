package domain

import (
	"time"

	"github.com/google/uuid"
)

var (
	ErrDumpsterTypeNotFound = &Error{Code: ENOTFOUND, Message: "Dumpster type not found"}
	ErrDumpsterNotFound     = &Error{Code: ENOTFOUND, Message: "Dumpster not found"}
)

// DumpsterType is a rentable product: a size class with a price and physical
// dimensions.
type DumpsterType struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	SizeYards  int32     `json:"size_yards"`
	PriceCents int64     `json:"price_cents"`
	LengthFeet float64   `json:"length_feet"`
	WidthFeet  float64   `json:"width_feet"`
	HeightFeet float64   `json:"height_feet"`
	Quantity   int32     `json:"quantity"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Dumpster is one physical unit of a type. Whether it is in use is derived
// from its linked rental, never stored.
type Dumpster struct {
	ID             uuid.UUID `json:"id"`
	DumpsterTypeID uuid.UUID `json:"dumpster_type_id"`
	Identifier     string    `json:"identifier"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DumpsterWithStatus pairs a unit with its derived in-use flag for admin
// listings.
type DumpsterWithStatus struct {
	Dumpster
	InUse bool `json:"in_use"`
}
