package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolloffco/rolloff/internal/domain"
)

// CustomerRepo persists customers.
type CustomerRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

const customerColumns = `id, first_name, last_name, email, phone, business, stripe_customer_id, created_at, updated_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.Business,
		&c.StripeCustomerID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID returns the customer with the given id.
func (r *CustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "customer.get", "failed to get customer")
	}
	return c, nil
}

// GetByEmail matches the trimmed address case-insensitively. When more than
// one row matches, the oldest wins.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE lower(email) = lower($1)
		ORDER BY created_at ASC
		LIMIT 1
	`

	c, err := scanCustomer(r.db.QueryRow(ctx, query, strings.TrimSpace(email)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "customer.get_by_email", "failed to look up customer by email")
	}
	return c, nil
}

// Create inserts a customer and fills the generated id and timestamps.
func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	query := `
		INSERT INTO customers (first_name, last_name, email, phone, business, stripe_customer_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.FirstName,
		c.LastName,
		strings.TrimSpace(c.Email),
		c.Phone,
		c.Business,
		c.StripeCustomerID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create customer", "error", err)
		return nil, domain.Internal(err, "customer.create", "failed to create customer")
	}
	return c, nil
}

// SetStripeCustomerID backfills the processor reference on an existing
// customer. It never overwrites a non-empty value.
func (r *CustomerRepo) SetStripeCustomerID(ctx context.Context, id uuid.UUID, stripeCustomerID string) error {
	query := `
		UPDATE customers
		SET stripe_customer_id = $2, updated_at = now()
		WHERE id = $1 AND stripe_customer_id = ''
	`

	if _, err := r.db.Exec(ctx, query, id, stripeCustomerID); err != nil {
		return domain.Internal(err, "customer.set_stripe_id", "failed to set stripe customer id")
	}
	return nil
}

// List returns all customers, newest first.
func (r *CustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, domain.Internal(err, "customer.list", "failed to list customers")
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, domain.Internal(err, "customer.list", "failed to scan customer")
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}
