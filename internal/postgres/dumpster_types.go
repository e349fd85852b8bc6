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

// DumpsterTypeRepo persists the rentable product catalog.
type DumpsterTypeRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

const dumpsterTypeColumns = `id, name, size_yards, price_cents, length_feet, width_feet, height_feet, quantity, active, created_at, updated_at`

func scanDumpsterType(row pgx.Row) (*domain.DumpsterType, error) {
	var t domain.DumpsterType
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.SizeYards,
		&t.PriceCents,
		&t.LengthFeet,
		&t.WidthFeet,
		&t.HeightFeet,
		&t.Quantity,
		&t.Active,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns the catalog, optionally restricted to active types.
func (r *DumpsterTypeRepo) List(ctx context.Context, activeOnly bool) ([]domain.DumpsterType, error) {
	query := `SELECT ` + dumpsterTypeColumns + ` FROM dumpster_types`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY size_yards ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, domain.Internal(err, "dumpster_type.list", "failed to list dumpster types")
	}
	defer rows.Close()

	var out []domain.DumpsterType
	for rows.Next() {
		t, err := scanDumpsterType(rows)
		if err != nil {
			return nil, domain.Internal(err, "dumpster_type.list", "failed to scan dumpster type")
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// GetByID returns a single type.
func (r *DumpsterTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DumpsterType, error) {
	query := `SELECT ` + dumpsterTypeColumns + ` FROM dumpster_types WHERE id = $1`

	t, err := scanDumpsterType(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDumpsterTypeNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "dumpster_type.get", "failed to get dumpster type")
	}
	return t, nil
}

// GetDefault returns the oldest active type, used when a confirmed order
// carries a cart reference that no longer resolves.
func (r *DumpsterTypeRepo) GetDefault(ctx context.Context) (*domain.DumpsterType, error) {
	query := `SELECT ` + dumpsterTypeColumns + ` FROM dumpster_types WHERE active ORDER BY created_at ASC LIMIT 1`

	t, err := scanDumpsterType(r.db.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDumpsterTypeNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "dumpster_type.get_default", "failed to get default dumpster type")
	}
	return t, nil
}

// Create inserts a type and fills the generated id and timestamps.
func (r *DumpsterTypeRepo) Create(ctx context.Context, t *domain.DumpsterType) (*domain.DumpsterType, error) {
	query := `
		INSERT INTO dumpster_types (name, size_yards, price_cents, length_feet, width_feet, height_feet, quantity, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		t.Name,
		t.SizeYards,
		t.PriceCents,
		t.LengthFeet,
		t.WidthFeet,
		t.HeightFeet,
		t.Quantity,
		t.Active,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create dumpster type", "error", err)
		return nil, domain.Internal(err, "dumpster_type.create", "failed to create dumpster type")
	}
	return t, nil
}

// Update replaces the mutable fields of a type.
func (r *DumpsterTypeRepo) Update(ctx context.Context, t *domain.DumpsterType) (*domain.DumpsterType, error) {
	query := `
		UPDATE dumpster_types
		SET name = $2, size_yards = $3, price_cents = $4, length_feet = $5,
		    width_feet = $6, height_feet = $7, quantity = $8, active = $9,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		t.ID,
		t.Name,
		t.SizeYards,
		t.PriceCents,
		t.LengthFeet,
		t.WidthFeet,
		t.HeightFeet,
		t.Quantity,
		t.Active,
	).Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDumpsterTypeNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "dumpster_type.update", "failed to update dumpster type")
	}
	return t, nil
}

// Delete removes a type permanently.
func (r *DumpsterTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dumpster_types WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "dumpster_type.delete", "failed to delete dumpster type")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDumpsterTypeNotFound
	}
	return nil
}
