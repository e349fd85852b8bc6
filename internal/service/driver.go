package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/postgres"
)

// DriverService is the operations side of a rental: assignment, delivery,
// pickup and archiving. Status is always derived, never written.
type DriverService interface {
	ListRentals(ctx context.Context, includeArchived bool) ([]RentalView, error)
	GetRental(ctx context.Context, id uuid.UUID) (*RentalView, error)

	// UpdateRental merges an operational update into a rental, deriving
	// days dropped and the picked-up flag.
	UpdateRental(ctx context.Context, id uuid.UUID, update domain.OperationalUpdate) (*RentalView, error)

	ArchiveRental(ctx context.Context, id uuid.UUID, archived bool) error
	DeleteRental(ctx context.Context, id uuid.UUID) error
}

// RentalView is a rental with its derived status attached for listings.
type RentalView struct {
	domain.Rental
	Status domain.RentalState `json:"status"`
}

// DriverRentalStore is the rental persistence the operations views consume.
type DriverRentalStore interface {
	List(ctx context.Context, filter postgres.ListFilter) ([]domain.Rental, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error)
	Update(ctx context.Context, rn *domain.Rental) (*domain.Rental, error)
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type driverService struct {
	rentals DriverRentalStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewDriverService creates the operations service.
func NewDriverService(rentals DriverRentalStore, logger *slog.Logger) DriverService {
	return &driverService{
		rentals: rentals,
		logger:  logger.With("component", "driver"),
		now:     time.Now,
	}
}

func view(r domain.Rental, now time.Time) RentalView {
	return RentalView{Rental: r, Status: domain.Status(r, now)}
}

func (s *driverService) ListRentals(ctx context.Context, includeArchived bool) ([]RentalView, error) {
	rentals, err := s.rentals.List(ctx, postgres.ListFilter{IncludeArchived: includeArchived})
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]RentalView, len(rentals))
	for i, r := range rentals {
		views[i] = view(r, now)
	}
	return views, nil
}

func (s *driverService) GetRental(ctx context.Context, id uuid.UUID) (*RentalView, error) {
	r, err := s.rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := view(*r, s.now())
	return &v, nil
}

func (s *driverService) UpdateRental(ctx context.Context, id uuid.UUID, update domain.OperationalUpdate) (*RentalView, error) {
	r, err := s.rentals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := domain.ApplyOperationalUpdate(*r, update)
	if _, err := s.rentals.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.logger.Info("rental updated",
		"rental_id", id,
		"delivered", updated.Delivered,
		"picked_up", updated.PickedUp,
	)
	v := view(updated, s.now())
	return &v, nil
}

func (s *driverService) ArchiveRental(ctx context.Context, id uuid.UUID, archived bool) error {
	return s.rentals.SetArchived(ctx, id, archived)
}

func (s *driverService) DeleteRental(ctx context.Context, id uuid.UUID) error {
	return s.rentals.SoftDelete(ctx, id)
}
