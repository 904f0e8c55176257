package notification

import (
	"context"
	"slices"
	"time"

	"github.com/Abraxas-365/hirely/recruitment/application"
)

// Channel names a delivery route
type Channel string

const (
	ChannelEmail Channel = "email" // SES confirmation to the applicant
	ChannelAdmin Channel = "admin" // SNS notice to the hiring team
)

// EventApplicationSubmitted is the only event published today
const EventApplicationSubmitted = "application.submitted"

// Job is one queued notice. Channels holds the routes still to deliver, so
// a retry only repeats the ones that failed.
type Job struct {
	ID          string                     `json:"id"`
	Event       string                     `json:"event"`
	Payload     application.SubmittedEvent `json:"payload"`
	Channels    []Channel                  `json:"channels"`
	Attempt     int                        `json:"attempt"`
	MaxAttempts int                        `json:"max_attempts"`
	EnqueuedAt  time.Time                  `json:"enqueued_at"`
	LastError   string                     `json:"last_error,omitempty"`
}

// CanRetry reports whether another attempt is allowed
func (j *Job) CanRetry() bool {
	return j.Attempt < j.MaxAttempts
}

// Pending reports whether ch is still to be delivered
func (j *Job) Pending(ch Channel) bool {
	return slices.Contains(j.Channels, ch)
}

// Sender delivers one channel
type Sender interface {
	Channel() Channel
	Send(ctx context.Context, event application.SubmittedEvent) error
}
