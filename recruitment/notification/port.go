package notification

import (
	"context"
	"time"
)

// Queue is a FIFO of serialized jobs with delayed redelivery
type Queue interface {
	// Enqueue adds a job to the ready list
	Enqueue(ctx context.Context, job *Job) error

	// Dequeue blocks up to timeout. It returns nil, nil when nothing arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)

	// EnqueueDelayed schedules a job to become ready after delay
	EnqueueDelayed(ctx context.Context, job *Job, delay time.Duration) error

	// MoveDelayedToReady promotes due delayed jobs and returns how many moved
	MoveDelayedToReady(ctx context.Context) (int, error)
}
