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

// ServiceAreaRepo persists the configured geography used by tax matching
// and serviceability checks.
type ServiceAreaRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

const serviceAreaColumns = `id, name, aliases, latitude, longitude, local_tax_rate, created_at, updated_at`

func scanServiceArea(row pgx.Row) (*domain.ServiceArea, error) {
	var a domain.ServiceArea
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Aliases,
		&a.Latitude,
		&a.Longitude,
		&a.LocalTaxRate,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ServiceAreaRepo) scanAll(ctx context.Context, query string) ([]domain.ServiceArea, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ServiceArea
	for rows.Next() {
		a, err := scanServiceArea(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// ListServiceAreas returns every configured area in insertion order. Order
// matters: the first area is the fallback when no name matches.
func (r *ServiceAreaRepo) ListServiceAreas(ctx context.Context) ([]domain.ServiceArea, error) {
	query := `SELECT ` + serviceAreaColumns + ` FROM service_areas ORDER BY created_at ASC`

	areas, err := r.scanAll(ctx, query)
	if err != nil {
		return nil, domain.Internal(err, "service_area.list", "failed to list service areas")
	}
	return areas, nil
}

// ListTaxableAreas returns only areas carrying a local tax rate, in
// insertion order.
func (r *ServiceAreaRepo) ListTaxableAreas(ctx context.Context) ([]domain.ServiceArea, error) {
	query := `SELECT ` + serviceAreaColumns + ` FROM service_areas WHERE local_tax_rate IS NOT NULL ORDER BY created_at ASC`

	areas, err := r.scanAll(ctx, query)
	if err != nil {
		return nil, domain.Internal(err, "service_area.list_taxable", "failed to list taxable areas")
	}
	return areas, nil
}

// GetByID returns a single area.
func (r *ServiceAreaRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceArea, error) {
	query := `SELECT ` + serviceAreaColumns + ` FROM service_areas WHERE id = $1`

	a, err := scanServiceArea(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrServiceAreaNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "service_area.get", "failed to get service area")
	}
	return a, nil
}

// Create inserts an area and fills the generated id and timestamps.
func (r *ServiceAreaRepo) Create(ctx context.Context, a *domain.ServiceArea) (*domain.ServiceArea, error) {
	query := `
		INSERT INTO service_areas (name, aliases, latitude, longitude, local_tax_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	if a.Aliases == nil {
		a.Aliases = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		a.Name,
		a.Aliases,
		a.Latitude,
		a.Longitude,
		a.LocalTaxRate,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create service area", "error", err)
		return nil, domain.Internal(err, "service_area.create", "failed to create service area")
	}
	return a, nil
}

// Update replaces the mutable fields of an area.
func (r *ServiceAreaRepo) Update(ctx context.Context, a *domain.ServiceArea) (*domain.ServiceArea, error) {
	query := `
		UPDATE service_areas
		SET name = $2, aliases = $3, latitude = $4, longitude = $5, local_tax_rate = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	if a.Aliases == nil {
		a.Aliases = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		a.ID,
		a.Name,
		a.Aliases,
		a.Latitude,
		a.Longitude,
		a.LocalTaxRate,
	).Scan(&a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrServiceAreaNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "service_area.update", "failed to update service area")
	}
	return a, nil
}

// Delete removes an area permanently.
func (r *ServiceAreaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM service_areas WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "service_area.delete", "failed to delete service area")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServiceAreaNotFound
	}
	return nil
}
