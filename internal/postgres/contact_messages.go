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

// ContactMessageRepo persists contact-form submissions.
type ContactMessageRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

const contactColumns = `id, first_name, last_name, email, phone, subject, message, status, created_at`

func scanContactMessage(row pgx.Row) (*domain.ContactMessage, error) {
	var m domain.ContactMessage
	err := row.Scan(
		&m.ID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.Subject,
		&m.Message,
		&m.Status,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a submission with status new.
func (r *ContactMessageRepo) Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	query := `
		INSERT INTO contact_messages (first_name, last_name, email, phone, subject, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	if m.Status == "" {
		m.Status = domain.ContactNew
	}
	err := r.db.QueryRow(ctx, query,
		m.FirstName,
		m.LastName,
		m.Email,
		m.Phone,
		m.Subject,
		m.Message,
		m.Status,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create contact message", "error", err)
		return nil, domain.Internal(err, "contact.create", "failed to create contact message")
	}
	return m, nil
}

// List returns submissions newest first, optionally filtered by status.
func (r *ContactMessageRepo) List(ctx context.Context, status *domain.ContactStatus) ([]domain.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Internal(err, "contact.list", "failed to list contact messages")
	}
	defer rows.Close()

	var out []domain.ContactMessage
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, domain.Internal(err, "contact.list", "failed to scan contact message")
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// GetByID returns a single submission.
func (r *ContactMessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages WHERE id = $1`

	m, err := scanContactMessage(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrContactMessageNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "contact.get", "failed to get contact message")
	}
	return m, nil
}

// SetStatus moves a submission between triage states.
func (r *ContactMessageRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_messages SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return domain.Internal(err, "contact.set_status", "failed to update contact message status")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactMessageNotFound
	}
	return nil
}
