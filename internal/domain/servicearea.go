package domain

import (
	"time"

	"github.com/google/uuid"
)

var (
	ErrServiceAreaNotFound = &Error{Code: ENOTFOUND, Message: "Service area not found"}
)

// ServiceArea is an administrator-configured named region with coordinates
// and a local tax rate. Tax matching uses the name and aliases; delivery
// serviceability uses the coordinates.
type ServiceArea struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Aliases   []string  `json:"aliases"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`

	// LocalTaxRate is a fraction (0.02 for 2%). Nil excludes the area from
	// tax matching.
	LocalTaxRate *float64 `json:"local_tax_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
