package notificationsrv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type delayedJob struct {
	job   notification.Job
	delay time.Duration
}

type memoryQueue struct {
	ready      []*notification.Job
	delayed    []delayedJob
	enqueueErr error
}

func (q *memoryQueue) Enqueue(ctx context.Context, job *notification.Job) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.ready = append(q.ready, job)
	return nil
}

func (q *memoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*notification.Job, error) {
	return nil, nil
}

func (q *memoryQueue) EnqueueDelayed(ctx context.Context, job *notification.Job, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.delayed = append(q.delayed, delayedJob{job: *job, delay: delay})
	return nil
}

func (q *memoryQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	return 0, nil
}

type stubSender struct {
	channel notification.Channel
	err     error
	calls   int
}

func (s *stubSender) Channel() notification.Channel { return s.channel }

func (s *stubSender) Send(ctx context.Context, event application.SubmittedEvent) error {
	s.calls++
	return s.err
}

func event() application.SubmittedEvent {
	return application.SubmittedEvent{ApplicationID: "a1", JobID: "j1", Email: "x@y.co"}
}

func TestApplicationSubmitted_Enqueues(t *testing.T) {
	q := &memoryQueue{}
	email := &stubSender{channel: notification.ChannelEmail}
	admin := &stubSender{channel: notification.ChannelAdmin}
	svc := NewService(q, 3, time.Second, email, nil, admin)

	require.NoError(t, svc.ApplicationSubmitted(context.Background(), event()))

	require.Len(t, q.ready, 1)
	job := q.ready[0]
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, notification.EventApplicationSubmitted, job.Event)
	assert.Equal(t, []notification.Channel{"email", "admin"}, job.Channels)
	assert.Equal(t, 4, job.MaxAttempts)
	assert.Equal(t, 0, email.calls, "delivery happens in the worker")
}

func TestApplicationSubmitted_NoSenders(t *testing.T) {
	q := &memoryQueue{}
	svc := NewService(q, 3, time.Second)

	require.NoError(t, svc.ApplicationSubmitted(context.Background(), event()))
	assert.Empty(t, q.ready)
}

func TestApplicationSubmitted_QueueError(t *testing.T) {
	q := &memoryQueue{enqueueErr: errors.New("redis down")}
	svc := NewService(q, 3, time.Second, &stubSender{channel: notification.ChannelEmail})

	assert.Error(t, svc.ApplicationSubmitted(context.Background(), event()))
}

func TestProcess_AllDelivered(t *testing.T) {
	q := &memoryQueue{}
	email := &stubSender{channel: notification.ChannelEmail}
	admin := &stubSender{channel: notification.ChannelAdmin}
	svc := NewService(q, 3, time.Second, email, admin)

	job := &notification.Job{ID: "n1", Payload: event(), Channels: svc.Channels(), MaxAttempts: 4}

	require.NoError(t, svc.Process(context.Background(), job))
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, 1, admin.calls)
	assert.Empty(t, q.delayed)
}

func TestProcess_RetriesOnlyFailedChannels(t *testing.T) {
	q := &memoryQueue{}
	email := &stubSender{channel: notification.ChannelEmail, err: errors.New("throttled")}
	admin := &stubSender{channel: notification.ChannelAdmin}
	svc := NewService(q, 3, 10*time.Second, email, admin)

	job := &notification.Job{ID: "n1", Payload: event(), Channels: svc.Channels(), MaxAttempts: 4}

	err := svc.Process(context.Background(), job)
	assert.ErrorContains(t, err, "throttled")

	require.Len(t, q.delayed, 1)
	retry := q.delayed[0]
	assert.Equal(t, 10*time.Second, retry.delay)
	assert.Equal(t, []notification.Channel{notification.ChannelEmail}, retry.job.Channels)
	assert.Equal(t, 1, retry.job.Attempt)
	assert.Contains(t, retry.job.LastError, "throttled")

	// second failure doubles the delay
	next := retry.job
	require.Error(t, svc.Process(context.Background(), &next))
	require.Len(t, q.delayed, 2)
	assert.Equal(t, 20*time.Second, q.delayed[1].delay)
	assert.Equal(t, 1, admin.calls, "admin notice is not sent twice")
}

func TestProcess_DropsAfterMaxAttempts(t *testing.T) {
	q := &memoryQueue{}
	email := &stubSender{channel: notification.ChannelEmail, err: errors.New("bounced")}
	svc := NewService(q, 3, time.Second, email)

	job := &notification.Job{ID: "n1", Payload: event(), Channels: svc.Channels(), Attempt: 3, MaxAttempts: 4}

	err := svc.Process(context.Background(), job)
	assert.Error(t, err)
	assert.Empty(t, q.delayed)
	assert.Equal(t, 4, job.Attempt)
}

func TestProcess_UnknownChannelSkipped(t *testing.T) {
	q := &memoryQueue{}
	svc := NewService(q, 3, time.Second)

	job := &notification.Job{ID: "n1", Payload: event(), Channels: []notification.Channel{"sms"}, MaxAttempts: 4}

	assert.NoError(t, svc.Process(context.Background(), job))
	assert.Empty(t, q.delayed)
}

func TestProcess_RetryScheduledAfterCancel(t *testing.T) {
	q := &memoryQueue{}
	email := &stubSender{channel: notification.ChannelEmail, err: errors.New("throttled")}
	svc := NewService(q, 3, time.Second, email)
	require.NoError(t, svc.ApplicationSubmitted(context.Background(), event()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := svc.Process(ctx, q.ready[0])

	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)
	require.Len(t, q.delayed, 1, "retry survives shutdown")
	assert.Equal(t, []notification.Channel{notification.ChannelEmail}, q.delayed[0].job.Channels)
}
