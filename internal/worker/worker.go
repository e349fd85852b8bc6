package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/email"
	"github.com/rolloffco/rolloff/internal/jobs"
	"github.com/rolloffco/rolloff/internal/postgres"
)

// Config holds worker configuration
type Config struct {
	// WorkerID uniquely identifies this worker instance
	WorkerID string

	// PollInterval is how often to check for new jobs
	PollInterval time.Duration

	// MaxConcurrency is the maximum number of jobs to process concurrently
	MaxConcurrency int

	// Queue name to process
	Queue string
}

// Worker processes background jobs
type Worker struct {
	config       Config
	jobRepo      *postgres.JobRepo
	emailService *email.Service
	logger       *slog.Logger
}

// NewWorker creates a new background job worker
func NewWorker(jobRepo *postgres.JobRepo, emailService *email.Service, config Config, logger *slog.Logger) *Worker {
	if config.WorkerID == "" {
		config.WorkerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}
	if config.PollInterval == 0 {
		config.PollInterval = 1 * time.Second
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 5
	}
	if config.Queue == "" {
		config.Queue = jobs.EmailQueue
	}

	return &Worker{
		config:       config,
		jobRepo:      jobRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// Start begins processing jobs until the context is cancelled
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("worker starting",
		"worker_id", w.config.WorkerID,
		"queue", w.config.Queue,
		"poll_interval", w.config.PollInterval,
		"max_concurrency", w.config.MaxConcurrency,
	)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	// Semaphore for concurrency control
	sem := make(chan struct{}, w.config.MaxConcurrency)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker shutting down", "worker_id", w.config.WorkerID)
			return ctx.Err()

		case <-ticker.C:
			select {
			case sem <- struct{}{}:
				go func() {
					defer func() { <-sem }()
					w.claimAndProcess(ctx)
				}()
			default:
				// At max concurrency, skip this poll
			}
		}
	}
}

// claimAndProcess claims runnable jobs and runs them to completion,
// recording success or failure. Drains the queue before returning so a slow
// poll interval never backs up a burst of jobs.
func (w *Worker) claimAndProcess(ctx context.Context) {
	for {
		job, err := w.jobRepo.ClaimNext(ctx, w.config.WorkerID, w.config.Queue)
		if errors.Is(err, pgx.ErrNoRows) {
			return
		}
		if err != nil {
			w.logger.Error("failed to claim job", "worker_id", w.config.WorkerID, "error", err)
			return
		}

		w.logger.Info("processing job",
			"worker_id", w.config.WorkerID,
			"job_id", job.ID,
			"job_type", job.JobType,
		)

		if err := w.processJob(ctx, job); err != nil {
			w.logger.Error("job failed",
				"worker_id", w.config.WorkerID,
				"job_id", job.ID,
				"job_type", job.JobType,
				"retry_count", job.RetryCount,
				"error", err,
			)
			if failErr := w.jobRepo.Fail(ctx, job.ID, err.Error()); failErr != nil {
				w.logger.Error("failed to record job failure", "job_id", job.ID, "error", failErr)
			}
			continue
		}

		w.logger.Info("job completed",
			"worker_id", w.config.WorkerID,
			"job_id", job.ID,
			"job_type", job.JobType,
		)
		if err := w.jobRepo.Complete(ctx, job.ID); err != nil {
			w.logger.Error("failed to record job completion", "job_id", job.ID, "error", err)
		}
	}
}

// processJob runs a single job under its configured timeout.
func (w *Worker) processJob(ctx context.Context, job *domain.Job) error {
	timeout := time.Duration(job.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	jobCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if jobs.IsEmailJob(job.JobType) {
		return jobs.ProcessEmailJob(jobCtx, job, w.emailService)
	}

	return fmt.Errorf("unknown job type: %s", job.JobType)
}
