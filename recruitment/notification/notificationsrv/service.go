package notificationsrv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/pkg/metrics"
	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/notification"
	"github.com/google/uuid"
)

const defaultBackoff = 30 * time.Second

// Service enqueues submitted applications and delivers them to every
// configured channel
type Service struct {
	queue       notification.Queue
	senders     map[notification.Channel]notification.Sender
	order       []notification.Channel
	maxAttempts int
	backoff     time.Duration
}

// NewService creates a notification service. Nil senders are skipped, so a
// channel without configuration is simply never enqueued.
func NewService(queue notification.Queue, maxRetries int, backoff time.Duration, senders ...notification.Sender) *Service {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	s := &Service{
		queue:       queue,
		senders:     make(map[notification.Channel]notification.Sender, len(senders)),
		maxAttempts: maxRetries + 1,
		backoff:     backoff,
	}
	for _, sender := range senders {
		if sender == nil {
			continue
		}
		if _, dup := s.senders[sender.Channel()]; !dup {
			s.order = append(s.order, sender.Channel())
		}
		s.senders[sender.Channel()] = sender
	}
	return s
}

// Channels lists the enabled channels in registration order
func (s *Service) Channels() []notification.Channel {
	return append([]notification.Channel(nil), s.order...)
}

// ApplicationSubmitted implements application.Notifier
func (s *Service) ApplicationSubmitted(ctx context.Context, event application.SubmittedEvent) error {
	if len(s.order) == 0 {
		return nil
	}

	job := &notification.Job{
		ID:          uuid.NewString(),
		Event:       notification.EventApplicationSubmitted,
		Payload:     event,
		Channels:    s.Channels(),
		MaxAttempts: s.maxAttempts,
		EnqueuedAt:  time.Now(),
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return err
	}

	logx.Debugf("notification %s queued for application %s", job.ID, event.ApplicationID)
	return nil
}

// Process delivers one job. Channels that fail are rescheduled with
// exponential backoff until the job runs out of attempts, then dropped.
func (s *Service) Process(ctx context.Context, job *notification.Job) error {
	job.Attempt++

	var failed []notification.Channel
	var errs []error

	for _, ch := range job.Channels {
		sender, ok := s.senders[ch]
		if !ok {
			metrics.NotificationJobs.WithLabelValues(string(ch), "skipped").Inc()
			continue
		}

		if err := sender.Send(ctx, job.Payload); err != nil {
			failed = append(failed, ch)
			errs = append(errs, fmt.Errorf("%s: %w", ch, err))
			continue
		}
		metrics.NotificationJobs.WithLabelValues(string(ch), "sent").Inc()
	}

	if len(failed) == 0 {
		return nil
	}

	err := errors.Join(errs...)
	job.Channels = failed
	job.LastError = err.Error()

	if !job.CanRetry() {
		for _, ch := range failed {
			metrics.NotificationJobs.WithLabelValues(string(ch), "dropped").Inc()
		}
		logx.With(logx.Fields{
			"notification_id": job.ID,
			"application_id":  job.Payload.ApplicationID,
			"attempts":        job.Attempt,
		}).Error("notification dropped: " + job.LastError)
		return err
	}

	// a shutdown cancelling ctx mid-send must not lose the retry
	delay := s.delay(job.Attempt)
	if qerr := s.queue.EnqueueDelayed(context.WithoutCancel(ctx), job, delay); qerr != nil {
		return errors.Join(err, qerr)
	}
	for _, ch := range failed {
		metrics.NotificationJobs.WithLabelValues(string(ch), "retried").Inc()
	}

	logx.Warnf("notification %s attempt %d failed, retrying in %s: %v", job.ID, job.Attempt, delay, err)
	return err
}

// delay doubles per attempt: backoff, 2*backoff, 4*backoff...
func (s *Service) delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return s.backoff << (attempt - 1)
}
