package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rolloffco/rolloff/internal/billing"
	"github.com/rolloffco/rolloff/internal/domain"
)

// StagingService persists a draft at the payment stage and hands the browser
// off to the hosted payment page.
type StagingService interface {
	// Stage validates the full draft, snapshots it as a PendingOrder, then
	// creates a payment session for the total. The snapshot is written
	// before any call to the payment processor: a persistence failure
	// aborts with no external effects, while a session failure leaves the
	// staged row behind for the next attempt.
	Stage(ctx context.Context, draft domain.DraftOrder) (*StagedCheckout, error)
}

// StagedCheckout is the handoff result returned to the browser.
type StagedCheckout struct {
	PendingOrderID uuid.UUID `json:"pending_order_id"`
	CheckoutURL    string    `json:"checkout_url"`
	SessionID      string    `json:"session_id"`
}

// PendingOrderStore is the staging persistence consumed by checkout and
// confirmation.
type PendingOrderStore interface {
	Create(ctx context.Context, po *domain.PendingOrder) (*domain.PendingOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PendingOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StagingURLs are the absolute return endpoints registered on each session.
type StagingURLs struct {
	SuccessURL string
	CancelURL  string
}

type stagingService struct {
	pendingOrders PendingOrderStore
	billing       billing.Provider
	checkout      CheckoutService
	urls          StagingURLs
	logger        *slog.Logger
}

// NewStagingService creates the payment handoff service.
func NewStagingService(
	pendingOrders PendingOrderStore,
	billingProvider billing.Provider,
	checkout CheckoutService,
	urls StagingURLs,
	logger *slog.Logger,
) StagingService {
	return &stagingService{
		pendingOrders: pendingOrders,
		billing:       billingProvider,
		checkout:      checkout,
		urls:          urls,
		logger:        logger.With("component", "staging"),
	}
}

func (s *stagingService) Stage(ctx context.Context, draft domain.DraftOrder) (*StagedCheckout, error) {
	// Every stage before payment must validate before money moves.
	for _, stage := range domain.StageOrder {
		if stage == domain.StagePayment {
			break
		}
		if errs := domain.ValidateStage(stage, draft); len(errs) > 0 {
			return nil, &domain.ValidationError{Op: "staging.stage", Fields: errs}
		}
	}

	quote, err := s.checkout.Quote(ctx, draft)
	if err != nil {
		return nil, err
	}

	po := &domain.PendingOrder{
		Customer:      draft.Customer,
		Delivery:      draft.Delivery,
		Insurance:     draft.Insurance,
		Cart:          draft.Cart,
		SubtotalCents: quote.SubtotalCents,
		TaxCents:      quote.TaxCents,
		TotalCents:    quote.TotalCents,
		TaxRate:       quote.TaxRate,
	}
	if _, err := s.pendingOrders.Create(ctx, po); err != nil {
		return nil, err
	}

	productName := draft.Cart.Name
	if productName == "" {
		productName = "Dumpster rental"
	}

	session, err := s.billing.CreateCheckoutSession(ctx, billing.CheckoutSessionParams{
		PendingOrderID:  po.ID,
		AmountCents:     quote.TotalCents,
		ProductName:     productName,
		Quantity:        1,
		CustomerEmail:   draft.Customer.Email,
		CustomerName:    draft.Customer.DisplayName(),
		DeliveryAddress: draft.Delivery.Address,
		DeliveryDate:    draft.Delivery.RequestedDate,
		SuccessURL:      s.urls.SuccessURL,
		CancelURL:       s.urls.CancelURL,
	})
	if err != nil {
		// The staged row stays behind; the customer can retry and the new
		// attempt stages a fresh snapshot.
		s.logger.Error("failed to create payment session after staging",
			"pending_order_id", po.ID,
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("checkout staged",
		"pending_order_id", po.ID,
		"session_id", session.ID,
		"total_cents", quote.TotalCents,
	)

	return &StagedCheckout{
		PendingOrderID: po.ID,
		CheckoutURL:    session.URL,
		SessionID:      session.ID,
	}, nil
}
