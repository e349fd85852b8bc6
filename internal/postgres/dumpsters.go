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

// DumpsterRepo persists physical dumpster units.
type DumpsterRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

const dumpsterColumns = `id, dumpster_type_id, identifier, notes, created_at, updated_at`

func scanDumpster(row pgx.Row) (*domain.Dumpster, error) {
	var d domain.Dumpster
	err := row.Scan(
		&d.ID,
		&d.DumpsterTypeID,
		&d.Identifier,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns every unit, ordered by identifier.
func (r *DumpsterRepo) List(ctx context.Context) ([]domain.Dumpster, error) {
	query := `SELECT ` + dumpsterColumns + ` FROM dumpsters ORDER BY identifier ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, domain.Internal(err, "dumpster.list", "failed to list dumpsters")
	}
	defer rows.Close()

	var out []domain.Dumpster
	for rows.Next() {
		d, err := scanDumpster(rows)
		if err != nil {
			return nil, domain.Internal(err, "dumpster.list", "failed to scan dumpster")
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// GetByID returns a single unit.
func (r *DumpsterRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dumpster, error) {
	query := `SELECT ` + dumpsterColumns + ` FROM dumpsters WHERE id = $1`

	d, err := scanDumpster(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDumpsterNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "dumpster.get", "failed to get dumpster")
	}
	return d, nil
}

// Create inserts a unit and fills the generated id and timestamps.
func (r *DumpsterRepo) Create(ctx context.Context, d *domain.Dumpster) (*domain.Dumpster, error) {
	query := `
		INSERT INTO dumpsters (dumpster_type_id, identifier, notes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		d.DumpsterTypeID,
		d.Identifier,
		d.Notes,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to create dumpster", "error", err)
		return nil, domain.Internal(err, "dumpster.create", "failed to create dumpster")
	}
	return d, nil
}

// Update replaces the mutable fields of a unit.
func (r *DumpsterRepo) Update(ctx context.Context, d *domain.Dumpster) (*domain.Dumpster, error) {
	query := `
		UPDATE dumpsters
		SET dumpster_type_id = $2, identifier = $3, notes = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		d.ID,
		d.DumpsterTypeID,
		d.Identifier,
		d.Notes,
	).Scan(&d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDumpsterNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "dumpster.update", "failed to update dumpster")
	}
	return d, nil
}

// Delete removes a unit permanently.
func (r *DumpsterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dumpsters WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "dumpster.delete", "failed to delete dumpster")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDumpsterNotFound
	}
	return nil
}
