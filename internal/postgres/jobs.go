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

// JobRepo is the database-backed job queue. Claiming uses SKIP LOCKED so
// concurrent workers never double-process a job.
type JobRepo struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

const jobColumns = `id, job_type, queue, payload, status, retry_count, max_retries,
	timeout_seconds, run_at, locked_at, locked_by, error_message, completed_at,
	created_at, updated_at`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID,
		&j.JobType,
		&j.Queue,
		&j.Payload,
		&j.Status,
		&j.RetryCount,
		&j.MaxRetries,
		&j.TimeoutSeconds,
		&j.RunAt,
		&j.LockedAt,
		&j.LockedBy,
		&j.ErrorMessage,
		&j.CompletedAt,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// EnqueueParams describes a job to enqueue. Zero values take the table
// defaults for queue, retries and timeout.
type EnqueueParams struct {
	JobType        string
	Queue          string
	Payload        []byte
	MaxRetries     int32
	TimeoutSeconds int32
}

// Enqueue inserts a pending job runnable immediately.
func (r *JobRepo) Enqueue(ctx context.Context, p EnqueueParams) (*domain.Job, error) {
	if p.Queue == "" {
		p.Queue = domain.DefaultQueue
	}
	if p.MaxRetries == 0 {
		p.MaxRetries = 3
	}
	if p.TimeoutSeconds == 0 {
		p.TimeoutSeconds = 60
	}
	if p.Payload == nil {
		p.Payload = []byte(`{}`)
	}

	query := `
		INSERT INTO jobs (job_type, queue, payload, max_retries, timeout_seconds)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + jobColumns

	j, err := scanJob(r.db.QueryRow(ctx, query, p.JobType, p.Queue, p.Payload, p.MaxRetries, p.TimeoutSeconds))
	if err != nil {
		r.logger.Error("failed to enqueue job", "job_type", p.JobType, "error", err)
		return nil, domain.Internal(err, "job.enqueue", "failed to enqueue job")
	}
	return j, nil
}

// ClaimNext atomically claims the oldest runnable job on a queue. Returns
// pgx.ErrNoRows when the queue is empty.
func (r *JobRepo) ClaimNext(ctx context.Context, workerID, queue string) (*domain.Job, error) {
	query := `
		UPDATE jobs
		SET status = 'processing', locked_at = now(), locked_by = $1, updated_at = now()
		WHERE id = (
			SELECT id FROM jobs
			WHERE status = 'pending' AND queue = $2 AND run_at <= now()
			ORDER BY run_at ASC
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING ` + jobColumns

	return scanJob(r.db.QueryRow(ctx, query, workerID, queue))
}

// Complete marks a job finished and clears its lock.
func (r *JobRepo) Complete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE jobs
		SET status = 'completed', completed_at = now(), locked_at = NULL, locked_by = NULL, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// Fail records a processing error. Jobs with retries left go back to
// pending with exponential backoff; exhausted jobs stay failed.
func (r *JobRepo) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `
		UPDATE jobs
		SET retry_count = retry_count + 1,
		    error_message = $2,
		    status = CASE WHEN retry_count + 1 >= max_retries THEN 'failed' ELSE 'pending' END,
		    run_at = now() + (interval '1 minute' * power(2, retry_count)),
		    locked_at = NULL,
		    locked_by = NULL,
		    updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, errorMessage)
	return err
}

// GetByID returns a single job.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	j, err := scanJob(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("job.get", "job", id.String())
	}
	if err != nil {
		return nil, domain.Internal(err, "job.get", "failed to get job")
	}
	return j, nil
}
