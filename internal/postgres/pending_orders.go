package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolloffco/rolloff/internal/domain"
)

// PendingOrderRepo stages order snapshots across the payment handoff. The
// wizard state structs are stored as JSONB documents so the staging table
// never needs a migration when the wizard grows a field.
type PendingOrderRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// Create inserts a staged order and fills the generated id and timestamp.
func (r *PendingOrderRepo) Create(ctx context.Context, po *domain.PendingOrder) (*domain.PendingOrder, error) {
	customerJSON, err := json.Marshal(po.Customer)
	if err != nil {
		return nil, domain.Internal(err, "pending_order.create", "failed to encode customer info")
	}
	deliveryJSON, err := json.Marshal(po.Delivery)
	if err != nil {
		return nil, domain.Internal(err, "pending_order.create", "failed to encode delivery info")
	}
	insuranceJSON, err := json.Marshal(po.Insurance)
	if err != nil {
		return nil, domain.Internal(err, "pending_order.create", "failed to encode insurance info")
	}
	cartJSON, err := json.Marshal(po.Cart)
	if err != nil {
		return nil, domain.Internal(err, "pending_order.create", "failed to encode cart info")
	}

	query := `
		INSERT INTO pending_orders (customer_info, delivery_info, insurance_info, cart_info,
			subtotal_amount, tax_amount, total_amount, tax_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query,
		customerJSON,
		deliveryJSON,
		insuranceJSON,
		cartJSON,
		po.SubtotalCents,
		po.TaxCents,
		po.TotalCents,
		po.TaxRate,
	).Scan(&po.ID, &po.CreatedAt)
	if err != nil {
		r.logger.Error("failed to stage pending order", "error", err)
		return nil, domain.Internal(err, "pending_order.create", "failed to stage pending order")
	}
	return po, nil
}

// GetByID loads a staged order and decodes its snapshots.
func (r *PendingOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PendingOrder, error) {
	query := `
		SELECT id, customer_info, delivery_info, insurance_info, cart_info,
			subtotal_amount, tax_amount, total_amount, tax_rate, created_at
		FROM pending_orders
		WHERE id = $1
	`

	var po domain.PendingOrder
	var customerJSON, deliveryJSON, insuranceJSON, cartJSON []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&po.ID,
		&customerJSON,
		&deliveryJSON,
		&insuranceJSON,
		&cartJSON,
		&po.SubtotalCents,
		&po.TaxCents,
		&po.TotalCents,
		&po.TaxRate,
		&po.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPendingOrderNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "pending_order.get", "failed to get pending order")
	}

	if err := json.Unmarshal(customerJSON, &po.Customer); err != nil {
		return nil, domain.Internal(err, "pending_order.get", "failed to decode customer info")
	}
	if err := json.Unmarshal(deliveryJSON, &po.Delivery); err != nil {
		return nil, domain.Internal(err, "pending_order.get", "failed to decode delivery info")
	}
	if err := json.Unmarshal(insuranceJSON, &po.Insurance); err != nil {
		return nil, domain.Internal(err, "pending_order.get", "failed to decode insurance info")
	}
	if err := json.Unmarshal(cartJSON, &po.Cart); err != nil {
		return nil, domain.Internal(err, "pending_order.get", "failed to decode cart info")
	}
	return &po, nil
}

// Delete removes a staged order. Returns ErrPendingOrderNotFound when the
// row is already gone, which confirmation treats as "already processed".
func (r *PendingOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pending_orders WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "pending_order.delete", "failed to delete pending order")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPendingOrderNotFound
	}
	return nil
}
