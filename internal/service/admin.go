package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/postgres"
)

// AdminService is the back-office catalog and geography management surface.
type AdminService interface {
	// Service areas. Local tax rate is accepted as a percentage in [0,100]
	// and stored as a fraction.
	ListServiceAreas(ctx context.Context) ([]domain.ServiceArea, error)
	GetServiceArea(ctx context.Context, id uuid.UUID) (*domain.ServiceArea, error)
	CreateServiceArea(ctx context.Context, input ServiceAreaInput) (*domain.ServiceArea, error)
	UpdateServiceArea(ctx context.Context, id uuid.UUID, input ServiceAreaInput) (*domain.ServiceArea, error)
	DeleteServiceArea(ctx context.Context, id uuid.UUID) error

	// Dumpster types.
	ListDumpsterTypes(ctx context.Context) ([]domain.DumpsterType, error)
	CreateDumpsterType(ctx context.Context, t domain.DumpsterType) (*domain.DumpsterType, error)
	UpdateDumpsterType(ctx context.Context, t domain.DumpsterType) (*domain.DumpsterType, error)
	DeleteDumpsterType(ctx context.Context, id uuid.UUID) error

	// Physical units, listed with their derived in-use flag.
	ListDumpsters(ctx context.Context) ([]domain.DumpsterWithStatus, error)
	CreateDumpster(ctx context.Context, d domain.Dumpster) (*domain.Dumpster, error)
	UpdateDumpster(ctx context.Context, d domain.Dumpster) (*domain.Dumpster, error)
	DeleteDumpster(ctx context.Context, id uuid.UUID) error
}

// ServiceAreaInput is the admin-facing service area form.
type ServiceAreaInput struct {
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`

	// LocalTaxRatePercent is nil to exclude the area from tax matching.
	LocalTaxRatePercent *float64 `json:"local_tax_rate_percent"`
}

// ServiceAreaStore is the geography persistence consumed by admin.
type ServiceAreaStore interface {
	ListServiceAreas(ctx context.Context) ([]domain.ServiceArea, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceArea, error)
	Create(ctx context.Context, a *domain.ServiceArea) (*domain.ServiceArea, error)
	Update(ctx context.Context, a *domain.ServiceArea) (*domain.ServiceArea, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminDumpsterTypeStore is the catalog write side.
type AdminDumpsterTypeStore interface {
	DumpsterTypeStore
	Create(ctx context.Context, t *domain.DumpsterType) (*domain.DumpsterType, error)
	Update(ctx context.Context, t *domain.DumpsterType) (*domain.DumpsterType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DumpsterStore is the physical-unit persistence.
type DumpsterStore interface {
	List(ctx context.Context) ([]domain.Dumpster, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dumpster, error)
	Create(ctx context.Context, d *domain.Dumpster) (*domain.Dumpster, error)
	Update(ctx context.Context, d *domain.Dumpster) (*domain.Dumpster, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	areas         ServiceAreaStore
	dumpsterTypes AdminDumpsterTypeStore
	dumpsters     DumpsterStore
	rentals       DriverRentalStore
	logger        *slog.Logger
}

// NewAdminService creates the back-office service.
func NewAdminService(
	areas ServiceAreaStore,
	dumpsterTypes AdminDumpsterTypeStore,
	dumpsters DumpsterStore,
	rentals DriverRentalStore,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		areas:         areas,
		dumpsterTypes: dumpsterTypes,
		dumpsters:     dumpsters,
		rentals:       rentals,
		logger:        logger.With("component", "admin"),
	}
}

func (s *adminService) ListServiceAreas(ctx context.Context) ([]domain.ServiceArea, error) {
	return s.areas.ListServiceAreas(ctx)
}

func (s *adminService) GetServiceArea(ctx context.Context, id uuid.UUID) (*domain.ServiceArea, error) {
	return s.areas.GetByID(ctx, id)
}

func serviceAreaFromInput(input ServiceAreaInput) (*domain.ServiceArea, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewValidationError("service_area.validate", "name", "Name is required")
	}

	var rate *float64
	if input.LocalTaxRatePercent != nil {
		pct := *input.LocalTaxRatePercent
		if pct < 0 || pct > 100 {
			return nil, ErrInvalidTaxRate
		}
		frac := pct / 100
		rate = &frac
	}

	return &domain.ServiceArea{
		Name:         strings.TrimSpace(input.Name),
		Aliases:      input.Aliases,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		LocalTaxRate: rate,
	}, nil
}

func (s *adminService) CreateServiceArea(ctx context.Context, input ServiceAreaInput) (*domain.ServiceArea, error) {
	area, err := serviceAreaFromInput(input)
	if err != nil {
		return nil, err
	}
	return s.areas.Create(ctx, area)
}

func (s *adminService) UpdateServiceArea(ctx context.Context, id uuid.UUID, input ServiceAreaInput) (*domain.ServiceArea, error) {
	area, err := serviceAreaFromInput(input)
	if err != nil {
		return nil, err
	}
	area.ID = id
	return s.areas.Update(ctx, area)
}

func (s *adminService) DeleteServiceArea(ctx context.Context, id uuid.UUID) error {
	return s.areas.Delete(ctx, id)
}

func (s *adminService) ListDumpsterTypes(ctx context.Context) ([]domain.DumpsterType, error) {
	return s.dumpsterTypes.List(ctx, false)
}

func (s *adminService) CreateDumpsterType(ctx context.Context, t domain.DumpsterType) (*domain.DumpsterType, error) {
	return s.dumpsterTypes.Create(ctx, &t)
}

func (s *adminService) UpdateDumpsterType(ctx context.Context, t domain.DumpsterType) (*domain.DumpsterType, error) {
	return s.dumpsterTypes.Update(ctx, &t)
}

func (s *adminService) DeleteDumpsterType(ctx context.Context, id uuid.UUID) error {
	return s.dumpsterTypes.Delete(ctx, id)
}

// ListDumpsters returns every unit with its derived in-use flag. A unit is
// in use when a linked rental is delivered and not yet picked up.
func (s *adminService) ListDumpsters(ctx context.Context) ([]domain.DumpsterWithStatus, error) {
	units, err := s.dumpsters.List(ctx)
	if err != nil {
		return nil, err
	}

	rentals, err := s.rentals.List(ctx, postgres.ListFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}

	inUse := map[uuid.UUID]bool{}
	for _, r := range rentals {
		if r.DumpsterID != nil && domain.InUse(r) {
			inUse[*r.DumpsterID] = true
		}
	}

	out := make([]domain.DumpsterWithStatus, len(units))
	for i, d := range units {
		out[i] = domain.DumpsterWithStatus{Dumpster: d, InUse: inUse[d.ID]}
	}
	return out, nil
}

func (s *adminService) CreateDumpster(ctx context.Context, d domain.Dumpster) (*domain.Dumpster, error) {
	if strings.TrimSpace(d.Identifier) == "" {
		return nil, ErrInvalidIdentifier
	}
	return s.dumpsters.Create(ctx, &d)
}

func (s *adminService) UpdateDumpster(ctx context.Context, d domain.Dumpster) (*domain.Dumpster, error) {
	if strings.TrimSpace(d.Identifier) == "" {
		return nil, ErrInvalidIdentifier
	}
	return s.dumpsters.Update(ctx, &d)
}

func (s *adminService) DeleteDumpster(ctx context.Context, id uuid.UUID) error {
	return s.dumpsters.Delete(ctx, id)
}
