package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/recruitment/notification"
	"github.com/Abraxas-365/hirely/recruitment/notification/notificationsrv"
)

const (
	dequeueTimeout = 5 * time.Second
	errorPause     = time.Second
)

type NotificationWorker struct {
	service      *notificationsrv.Service
	queue        notification.Queue
	workers      int
	pollInterval time.Duration
	wg           sync.WaitGroup
}

func NewNotificationWorker(service *notificationsrv.Service, queue notification.Queue, workers int, pollInterval time.Duration) *NotificationWorker {
	if workers < 1 {
		workers = 1
	}
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &NotificationWorker{
		service:      service,
		queue:        queue,
		workers:      workers,
		pollInterval: pollInterval,
	}
}

// Start launches the pool and the delayed job mover. They stop when ctx is done.
func (w *NotificationWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d notification workers", w.workers)

	w.wg.Add(w.workers + 1)
	go w.moveDelayedJobs(ctx)
	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

func (w *NotificationWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logx.Debugf("Notification worker %d started", workerID)

	for {
		if ctx.Err() != nil {
			logx.Debugf("Notification worker %d stopping", workerID)
			return
		}

		job, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logx.Errorf("Notification worker %d dequeue error: %v", workerID, err)
			sleep(ctx, errorPause)
			continue
		}

		// queue timeout, no jobs available
		if job == nil {
			continue
		}

		if err := w.service.Process(ctx, job); err != nil {
			logx.Debugf("Notification worker %d job %s: %v", workerID, job.ID, err)
		}
	}
}

func (w *NotificationWorker) moveDelayedJobs(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed notifications: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed notifications to ready queue", count)
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
