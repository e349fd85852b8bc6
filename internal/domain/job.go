package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job statuses as stored in the jobs table.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// DefaultQueue is the queue name used when the caller does not specify one.
const DefaultQueue = "default"

// Job is a unit of background work claimed and executed by the worker.
// Payload is a JSON document interpreted by the processor for JobType.
type Job struct {
	ID             uuid.UUID
	JobType        string
	Queue          string
	Payload        []byte
	Status         string
	RetryCount     int32
	MaxRetries     int32
	TimeoutSeconds int32
	RunAt          time.Time
	LockedAt       *time.Time
	LockedBy       *string
	ErrorMessage   *string
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
