package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/hirely/recruitment/application"
	"github.com/Abraxas-365/hirely/recruitment/notification"
	"github.com/Abraxas-365/hirely/recruitment/notification/notificationsrv"
	"github.com/stretchr/testify/assert"
)

type chanQueue struct {
	jobs  chan *notification.Job
	mu    sync.Mutex
	moves int
}

func (q *chanQueue) Enqueue(ctx context.Context, job *notification.Job) error {
	q.jobs <- job
	return nil
}

func (q *chanQueue) Dequeue(ctx context.Context, timeout time.Duration) (*notification.Job, error) {
	select {
	case job := <-q.jobs:
		return job, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(10 * time.Millisecond):
		return nil, nil
	}
}

func (q *chanQueue) EnqueueDelayed(ctx context.Context, job *notification.Job, delay time.Duration) error {
	return nil
}

func (q *chanQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.moves++
	return 0, nil
}

func (q *chanQueue) moveCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.moves
}

type countingSender struct {
	sent atomic.Int32
}

func (s *countingSender) Channel() notification.Channel { return notification.ChannelEmail }

func (s *countingSender) Send(ctx context.Context, event application.SubmittedEvent) error {
	s.sent.Add(1)
	return nil
}

func TestNotificationWorker_ProcessesQueue(t *testing.T) {
	q := &chanQueue{jobs: make(chan *notification.Job, 8)}
	sender := &countingSender{}
	svc := notificationsrv.NewService(q, 3, time.Second, sender)

	ctx, cancel := context.WithCancel(context.Background())
	w := NewNotificationWorker(svc, q, 2, 5*time.Millisecond)
	w.Start(ctx)

	for i := 0; i < 3; i++ {
		assert.NoError(t, svc.ApplicationSubmitted(ctx, application.SubmittedEvent{ApplicationID: "a"}))
	}

	assert.Eventually(t, func() bool { return sender.sent.Load() == 3 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return q.moveCount() > 0 }, time.Second, 5*time.Millisecond)

	cancel()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop")
	}
}
