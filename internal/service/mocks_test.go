package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/postgres"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockPendingOrderStore implements PendingOrderStore for testing
type mockPendingOrderStore struct {
	CreateFunc  func(ctx context.Context, po *domain.PendingOrder) (*domain.PendingOrder, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.PendingOrder, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPendingOrderStore) Create(ctx context.Context, po *domain.PendingOrder) (*domain.PendingOrder, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, po)
	}
	po.ID = uuid.New()
	return po, nil
}

func (m *mockPendingOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PendingOrder, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrPendingOrderNotFound
}

func (m *mockPendingOrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockCustomerStore implements CustomerStore for testing
type mockCustomerStore struct {
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmailFunc          func(ctx context.Context, email string) (*domain.Customer, error)
	CreateFunc              func(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	SetStripeCustomerIDFunc func(ctx context.Context, id uuid.UUID, stripeCustomerID string) error
}

func (m *mockCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *mockCustomerStore) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *mockCustomerStore) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	c.ID = uuid.New()
	return c, nil
}

func (m *mockCustomerStore) SetStripeCustomerID(ctx context.Context, id uuid.UUID, stripeCustomerID string) error {
	if m.SetStripeCustomerIDFunc != nil {
		return m.SetStripeCustomerIDFunc(ctx, id, stripeCustomerID)
	}
	return nil
}

// mockRentalStore implements RentalStore and DriverRentalStore for testing
type mockRentalStore struct {
	CreateFunc      func(ctx context.Context, rn *domain.Rental) (*domain.Rental, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Rental, error)
	UpdateFunc      func(ctx context.Context, rn *domain.Rental) (*domain.Rental, error)
	ListFunc        func(ctx context.Context, filter postgres.ListFilter) ([]domain.Rental, error)
	SetArchivedFunc func(ctx context.Context, id uuid.UUID, archived bool) error
	SoftDeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockRentalStore) Create(ctx context.Context, rn *domain.Rental) (*domain.Rental, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rn)
	}
	rn.ID = uuid.New()
	return rn, nil
}

func (m *mockRentalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrRentalNotFound
}

func (m *mockRentalStore) Update(ctx context.Context, rn *domain.Rental) (*domain.Rental, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, rn)
	}
	return rn, nil
}

func (m *mockRentalStore) List(ctx context.Context, filter postgres.ListFilter) ([]domain.Rental, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockRentalStore) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	if m.SetArchivedFunc != nil {
		return m.SetArchivedFunc(ctx, id, archived)
	}
	return nil
}

func (m *mockRentalStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return nil
}

// mockDumpsterTypeStore implements AdminDumpsterTypeStore for testing
type mockDumpsterTypeStore struct {
	ListFunc       func(ctx context.Context, activeOnly bool) ([]domain.DumpsterType, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.DumpsterType, error)
	GetDefaultFunc func(ctx context.Context) (*domain.DumpsterType, error)
	CreateFunc     func(ctx context.Context, t *domain.DumpsterType) (*domain.DumpsterType, error)
	UpdateFunc     func(ctx context.Context, t *domain.DumpsterType) (*domain.DumpsterType, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDumpsterTypeStore) List(ctx context.Context, activeOnly bool) ([]domain.DumpsterType, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activeOnly)
	}
	return nil, nil
}

func (m *mockDumpsterTypeStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DumpsterType, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrDumpsterTypeNotFound
}

func (m *mockDumpsterTypeStore) GetDefault(ctx context.Context) (*domain.DumpsterType, error) {
	if m.GetDefaultFunc != nil {
		return m.GetDefaultFunc(ctx)
	}
	return nil, domain.ErrDumpsterTypeNotFound
}

func (m *mockDumpsterTypeStore) Create(ctx context.Context, t *domain.DumpsterType) (*domain.DumpsterType, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	t.ID = uuid.New()
	return t, nil
}

func (m *mockDumpsterTypeStore) Update(ctx context.Context, t *domain.DumpsterType) (*domain.DumpsterType, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return t, nil
}

func (m *mockDumpsterTypeStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockQueue implements jobs.Queue for testing
type mockQueue struct {
	EnqueueFunc func(ctx context.Context, p postgres.EnqueueParams) (*domain.Job, error)
	enqueued    []postgres.EnqueueParams
}

func (m *mockQueue) Enqueue(ctx context.Context, p postgres.EnqueueParams) (*domain.Job, error) {
	m.enqueued = append(m.enqueued, p)
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, p)
	}
	return &domain.Job{ID: uuid.New(), JobType: p.JobType, Queue: p.Queue, Payload: p.Payload}, nil
}
