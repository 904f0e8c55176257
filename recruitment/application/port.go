package application

import (
	"context"
	"time"

	"github.com/Abraxas-365/hirely/pkg/kernel"
)

type Repository interface {
	// Create stores a new application
	Create(ctx context.Context, app *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// ListByJob retrieves the applications for a job, newest first
	ListByJob(ctx context.Context, jobID kernel.JobID) ([]*Application, error)
}

// SubmitGuard prevents two submissions for the same user and job from
// running at the same time
type SubmitGuard interface {
	// Acquire returns a token when the lock was taken, "" when it is held elsewhere
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Release drops the lock if token still owns it
	Release(ctx context.Context, key, token string) error
}

// Notifier hands submitted applications to the notification pipeline
type Notifier interface {
	ApplicationSubmitted(ctx context.Context, event SubmittedEvent) error
}
