package notificationinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirely/recruitment/notification"
	"github.com/redis/go-redis/v9"
)

// RedisQueue implements notification.Queue with a list and a delayed sorted set
type RedisQueue struct {
	client    redis.Cmdable
	queueName string
}

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client redis.Cmdable, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

// Enqueue adds a job to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, job *notification.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", job.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue notification %s: %w", job.ID, err)
	}

	return nil
}

// Dequeue gets a job from the queue (blocking with timeout)
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*notification.Job, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue notification: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var job notification.Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	return &job, nil
}

// EnqueueDelayed schedules a job for later processing (for retries)
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job *notification.Job, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed notification %s: %w", job.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())

	if err := q.client.ZAdd(ctx, q.delayedKey(), redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed notification %s: %w", job.ID, err)
	}

	return nil
}

// MoveDelayedToReady moves delayed jobs that are due to the main queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	jobs, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed notifications: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	pipe := q.client.TxPipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, q.delayedKey(), job)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed notifications to ready: %w", err)
	}

	return len(jobs), nil
}

// Stats returns the ready and delayed queue sizes
func (q *RedisQueue) Stats(ctx context.Context) (ready, delayed int64, err error) {
	if ready, err = q.client.LLen(ctx, q.queueName).Result(); err != nil {
		return 0, 0, fmt.Errorf("get queue size: %w", err)
	}
	if delayed, err = q.client.ZCard(ctx, q.delayedKey()).Result(); err != nil {
		return 0, 0, fmt.Errorf("get delayed queue size: %w", err)
	}
	return ready, delayed, nil
}
