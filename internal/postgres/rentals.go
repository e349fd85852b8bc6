package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolloffco/rolloff/internal/domain"
)

// RentalRepo persists confirmed rentals.
type RentalRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

const rentalColumns = `id, customer_id, dumpster_type_id, dumpster_id,
	delivery_address, delivery_date_requested, postal_code,
	driveway_insurance, cancellation_insurance, rush_delivery,
	delivered, picked_up, date_picked_up, drop_weight, days_dropped,
	payment_status, subtotal_amount, tax_amount, total_amount, tax_rate,
	stripe_session_id, archived, deleted, created_at, updated_at`

func scanRental(row pgx.Row) (*domain.Rental, error) {
	var rn domain.Rental
	err := row.Scan(
		&rn.ID,
		&rn.CustomerID,
		&rn.DumpsterTypeID,
		&rn.DumpsterID,
		&rn.DeliveryAddress,
		&rn.DeliveryDateRequested,
		&rn.PostalCode,
		&rn.DrivewayInsurance,
		&rn.CancellationInsurance,
		&rn.RushDelivery,
		&rn.Delivered,
		&rn.PickedUp,
		&rn.DatePickedUp,
		&rn.DropWeight,
		&rn.DaysDropped,
		&rn.PaymentStatus,
		&rn.SubtotalCents,
		&rn.TaxCents,
		&rn.TotalCents,
		&rn.TaxRate,
		&rn.StripeSessionID,
		&rn.Archived,
		&rn.Deleted,
		&rn.CreatedAt,
		&rn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rn, nil
}

// Create inserts a rental and fills the generated id and timestamps.
func (r *RentalRepo) Create(ctx context.Context, rn *domain.Rental) (*domain.Rental, error) {
	query := `
		INSERT INTO rentals (
			customer_id, dumpster_type_id, delivery_address, delivery_date_requested,
			postal_code, driveway_insurance, cancellation_insurance, rush_delivery,
			payment_status, subtotal_amount, tax_amount, total_amount, tax_rate,
			stripe_session_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		rn.CustomerID,
		rn.DumpsterTypeID,
		rn.DeliveryAddress,
		rn.DeliveryDateRequested,
		rn.PostalCode,
		rn.DrivewayInsurance,
		rn.CancellationInsurance,
		rn.RushDelivery,
		rn.PaymentStatus,
		rn.SubtotalCents,
		rn.TaxCents,
		rn.TotalCents,
		rn.TaxRate,
		rn.StripeSessionID,
	).Scan(&rn.ID, &rn.CreatedAt, &rn.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create rental", "error", err)
		return nil, domain.Internal(err, "rental.create", "failed to create rental")
	}
	return rn, nil
}

// GetByID returns a rental regardless of archive state. Soft-deleted rentals
// are invisible.
func (r *RentalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 AND NOT deleted`

	rn, err := scanRental(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "rental.get", "failed to get rental")
	}
	return rn, nil
}

// ListFilter narrows rental listings for the operations views.
type ListFilter struct {
	IncludeArchived bool
	CustomerID      *uuid.UUID
	DumpsterID      *uuid.UUID
}

// List returns rentals newest first, excluding soft-deleted rows.
func (r *RentalRepo) List(ctx context.Context, filter ListFilter) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE NOT deleted`
	args := []interface{}{}

	if !filter.IncludeArchived {
		query += ` AND NOT archived`
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		query += ` AND customer_id = $1`
	}
	if filter.DumpsterID != nil {
		args = append(args, *filter.DumpsterID)
		if len(args) == 1 {
			query += ` AND dumpster_id = $1`
		} else {
			query += ` AND dumpster_id = $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "rental.list", "failed to list rentals")
	}
	defer rows.Close()

	var out []domain.Rental
	for rows.Next() {
		rn, err := scanRental(rows)
		if err != nil {
			return nil, domain.Internal(err, "rental.list", "failed to scan rental")
		}
		out = append(out, *rn)
	}
	return out, rows.Err()
}

// Update persists the operational and payment fields of a rental.
func (r *RentalRepo) Update(ctx context.Context, rn *domain.Rental) (*domain.Rental, error) {
	query := `
		UPDATE rentals
		SET dumpster_id = $2,
		    delivered = $3,
		    picked_up = $4,
		    date_picked_up = $5,
		    drop_weight = $6,
		    days_dropped = $7,
		    payment_status = $8,
		    archived = $9,
		    updated_at = now()
		WHERE id = $1 AND NOT deleted
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		rn.ID,
		rn.DumpsterID,
		rn.Delivered,
		rn.PickedUp,
		rn.DatePickedUp,
		rn.DropWeight,
		rn.DaysDropped,
		rn.PaymentStatus,
		rn.Archived,
	).Scan(&rn.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		r.logger.Error("failed to update rental", "rental_id", rn.ID, "error", err)
		return nil, domain.Internal(err, "rental.update", "failed to update rental")
	}
	return rn, nil
}

// SetArchived flips the archive flag without touching operational fields.
func (r *RentalRepo) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	query := `UPDATE rentals SET archived = $2, updated_at = now() WHERE id = $1 AND NOT deleted`

	tag, err := r.db.Exec(ctx, query, id, archived)
	if err != nil {
		return domain.Internal(err, "rental.archive", "failed to archive rental")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

// SoftDelete hides a rental from every listing while keeping the row.
func (r *RentalRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE rentals SET deleted = TRUE, updated_at = now() WHERE id = $1 AND NOT deleted`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return domain.Internal(err, "rental.delete", "failed to delete rental")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

// GetBySessionID finds the rental created from a payment session, if any.
// Used by confirmation to detect already-processed sessions.
func (r *RentalRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE stripe_session_id = $1 AND NOT deleted LIMIT 1`

	rn, err := scanRental(r.db.QueryRow(ctx, query, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "rental.get_by_session", "failed to get rental by session")
	}
	return rn, nil
}
