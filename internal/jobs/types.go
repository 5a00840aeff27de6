package jobs

import (
	"context"
	"sync"
	"time"
)

// Status represents job status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Func is the work of one job. It should return ctx.Err() when canceled.
type Func func(ctx context.Context) error

// Job holds a single queued explorer operation (expand, rename, extract...).
type Job struct {
	// immutable fields
	ID     int64
	Name   string // operation name, e.g. "extract"
	Target string // path the operation acts on
	run    Func

	// state
	mu          sync.RWMutex
	Status      Status
	Error       string
	err         error
	EnqueuedAt  time.Time
	StartedAt   time.Time
	CompletedAt time.Time
	done        chan struct{}

	// cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// Snapshot returns a copy of important fields for UI.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return JobSnapshot{
		ID:          j.ID,
		Name:        j.Name,
		Target:      j.Target,
		Status:      j.Status,
		Error:       j.Error,
		EnqueuedAt:  j.EnqueuedAt,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
	}
}

// Wait blocks until the job finished and returns its error
func (j *Job) Wait() error {
	<-j.done
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.err
}

// JobSnapshot is a read-only view for UI.
type JobSnapshot struct {
	ID          int64
	Name        string
	Target      string
	Status      Status
	Error       string
	EnqueuedAt  time.Time
	StartedAt   time.Time
	CompletedAt time.Time
}
