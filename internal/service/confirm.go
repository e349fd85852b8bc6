package service

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/billing"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/jobs"
)

// ConfirmService reconciles a completed payment session into a durable
// Rental. Reached from both the browser return URL and the payment webhook,
// so the same session may be confirmed twice; the second call finds no
// staged row and fails without side effects.
type ConfirmService interface {
	Confirm(ctx context.Context, pendingOrderID uuid.UUID, sessionID string) (*domain.ConfirmedOrder, error)
}

// CustomerStore is the customer persistence consumed by confirmation.
type CustomerStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	SetStripeCustomerID(ctx context.Context, id uuid.UUID, stripeCustomerID string) error
}

// RentalStore is the rental persistence consumed by confirmation and the
// operations services.
type RentalStore interface {
	Create(ctx context.Context, rn *domain.Rental) (*domain.Rental, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error)
	Update(ctx context.Context, rn *domain.Rental) (*domain.Rental, error)
}

type confirmService struct {
	pendingOrders PendingOrderStore
	customers     CustomerStore
	rentals       RentalStore
	dumpsterTypes DumpsterTypeStore
	billing       billing.Provider
	queue         jobs.Queue

	defaultDumpsterTypeID string
	logger                *slog.Logger
}

// NewConfirmService creates the payment reconciliation service.
func NewConfirmService(
	pendingOrders PendingOrderStore,
	customers CustomerStore,
	rentals RentalStore,
	dumpsterTypes DumpsterTypeStore,
	billingProvider billing.Provider,
	queue jobs.Queue,
	defaultDumpsterTypeID string,
	logger *slog.Logger,
) ConfirmService {
	return &confirmService{
		pendingOrders:         pendingOrders,
		customers:             customers,
		rentals:               rentals,
		dumpsterTypes:         dumpsterTypes,
		billing:               billingProvider,
		queue:                 queue,
		defaultDumpsterTypeID: defaultDumpsterTypeID,
		logger:                logger.With("component", "confirm"),
	}
}

var postalCodePattern = regexp.MustCompile(`\d{5}`)

// extractPostalCode pulls the first 5-digit run out of a free-text address.
func extractPostalCode(address string) string {
	return postalCodePattern.FindString(address)
}

func (s *confirmService) Confirm(ctx context.Context, pendingOrderID uuid.UUID, sessionID string) (*domain.ConfirmedOrder, error) {
	// An absent staged row means the order was already confirmed or never
	// staged. Either way there is nothing to do.
	po, err := s.pendingOrders.GetByID(ctx, pendingOrderID)
	if err != nil {
		return nil, err
	}

	// Best effort: the saved processor customer id enables follow-up
	// charges later, but its absence never blocks confirmation.
	stripeCustomerID := ""
	if sessionID != "" {
		session, err := s.billing.GetCheckoutSession(ctx, sessionID)
		if err != nil {
			s.logger.Warn("failed to retrieve payment session",
				"pending_order_id", pendingOrderID,
				"session_id", sessionID,
				"error", err,
			)
		} else {
			stripeCustomerID = session.CustomerID
		}
	}

	customer, err := s.resolveCustomer(ctx, po.Customer, stripeCustomerID)
	if err != nil {
		return nil, err
	}

	dumpsterTypeID, err := s.resolveDumpsterType(ctx, po.Cart.DumpsterTypeID)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		CustomerID:            customer.ID,
		DumpsterTypeID:        dumpsterTypeID,
		DeliveryAddress:       po.Delivery.Address,
		DeliveryDateRequested: po.Delivery.RequestedDate,
		PostalCode:            extractPostalCode(po.Delivery.Address),
		DrivewayInsurance:     po.Insurance.Driveway,
		CancellationInsurance: po.Insurance.Cancellation,
		RushDelivery:          po.Insurance.Rush,
		PaymentStatus:         domain.PaymentCompleted,
		SubtotalCents:         po.SubtotalCents,
		TaxCents:              po.TaxCents,
		TotalCents:            po.TotalCents,
		TaxRate:               po.TaxRate,
		StripeSessionID:       sessionID,
	}
	if _, err := s.rentals.Create(ctx, rental); err != nil {
		return nil, err
	}

	// The staged row is deleted only after the rental insert succeeds. A
	// crash between the two leaves a duplicate-confirmable row; the rental
	// is never lost.
	if err := s.pendingOrders.Delete(ctx, pendingOrderID); err != nil {
		s.logger.Error("rental created but pending order not deleted",
			"pending_order_id", pendingOrderID,
			"rental_id", rental.ID,
			"error", err,
		)
	}

	s.enqueueOrderEmails(ctx, rental, po, customer)

	s.logger.Info("order confirmed",
		"pending_order_id", pendingOrderID,
		"rental_id", rental.ID,
		"customer_id", customer.ID,
		"total_cents", rental.TotalCents,
	)

	return &domain.ConfirmedOrder{
		RentalID:      rental.ID,
		CustomerID:    customer.ID,
		SubtotalCents: rental.SubtotalCents,
		TaxCents:      rental.TaxCents,
		TotalCents:    rental.TotalCents,
	}, nil
}

// resolveCustomer reuses an existing customer matched by email, backfilling
// the processor id when it was empty, or creates a new one.
func (s *confirmService) resolveCustomer(ctx context.Context, info domain.CustomerInfo, stripeCustomerID string) (*domain.Customer, error) {
	existing, err := s.customers.GetByEmail(ctx, info.Email)
	if err == nil {
		if stripeCustomerID != "" && !existing.HasStripeCustomer() {
			if err := s.customers.SetStripeCustomerID(ctx, existing.ID, stripeCustomerID); err != nil {
				s.logger.Warn("failed to backfill stripe customer id",
					"customer_id", existing.ID,
					"error", err,
				)
			} else {
				existing.StripeCustomerID = stripeCustomerID
			}
		}
		return existing, nil
	}
	if !domain.IsCode(err, domain.ENOTFOUND) {
		return nil, err
	}

	return s.customers.Create(ctx, &domain.Customer{
		FirstName:        info.FirstName,
		LastName:         info.LastName,
		Email:            info.Email,
		Phone:            info.Phone,
		Business:         info.Business,
		StripeCustomerID: stripeCustomerID,
	})
}

// resolveDumpsterType maps the cart snapshot to a live catalog row, falling
// back to the configured default and then the oldest active type.
func (s *confirmService) resolveDumpsterType(ctx context.Context, snapshotID string) (uuid.UUID, error) {
	if snapshotID != "" {
		if id, err := uuid.Parse(snapshotID); err == nil {
			if _, err := s.dumpsterTypes.GetByID(ctx, id); err == nil {
				return id, nil
			}
		}
		s.logger.Warn("cart dumpster type no longer resolves, using default", "snapshot_id", snapshotID)
	}

	if s.defaultDumpsterTypeID != "" {
		if id, err := uuid.Parse(s.defaultDumpsterTypeID); err == nil {
			return id, nil
		}
	}

	dt, err := s.dumpsterTypes.GetDefault(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return dt.ID, nil
}

// enqueueOrderEmails stages the customer receipt and admin alert. Outbox
// failures are logged and swallowed; the confirmation already happened.
func (s *confirmService) enqueueOrderEmails(ctx context.Context, rental *domain.Rental, po *domain.PendingOrder, customer *domain.Customer) {
	payload := jobs.OrderEmailPayload{
		RentalID:              rental.ID.String(),
		CustomerName:          po.Customer.DisplayName(),
		CustomerEmail:         customer.Email,
		CustomerPhone:         customer.Phone,
		DumpsterName:          po.Cart.Name,
		DeliveryAddress:       rental.DeliveryAddress,
		DeliveryDate:          rental.DeliveryDateRequested,
		DrivewayInsurance:     rental.DrivewayInsurance,
		CancellationInsurance: rental.CancellationInsurance,
		RushDelivery:          rental.RushDelivery,
		SubtotalCents:         rental.SubtotalCents,
		TaxCents:              rental.TaxCents,
		TotalCents:            rental.TotalCents,
		TaxRate:               rental.TaxRate,
	}

	if err := jobs.EnqueueRentalConfirmationEmail(ctx, s.queue, payload); err != nil {
		s.logger.Error("failed to enqueue confirmation email", "rental_id", rental.ID, "error", err)
	}
	if err := jobs.EnqueueAdminOrderAlertEmail(ctx, s.queue, payload); err != nil {
		s.logger.Error("failed to enqueue admin alert email", "rental_id", rental.ID, "error", err)
	}
}
