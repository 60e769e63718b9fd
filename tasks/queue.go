// Package tasks is a small fire-and-forget job queue. Producers enqueue named
// tasks with a JSON payload; a worker goroutine dequeues them and dispatches
// to registered handlers. Task failures are logged, never propagated back to
// the request that enqueued them.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const queueKey = "tasks:queue"

type Task struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Queue accepts tasks for asynchronous execution.
type Queue interface {
	Enqueue(ctx context.Context, t Task) error
}

// Dequeuer is the worker side of a queue. Dequeue blocks up to its internal
// poll interval and returns false when no task was available.
type Dequeuer interface {
	Dequeue(ctx context.Context) (Task, bool, error)
}

// RedisQueue is a Redis list used as a FIFO task queue (LPUSH/BRPOP).
type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, t Task) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode task %s: %w", t.Name, err)
	}
	if err := q.client.LPush(ctx, queueKey, raw).Err(); err != nil {
		return fmt.Errorf("enqueue task %s: %w", t.Name, err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Task, bool, error) {
	res, err := q.client.BRPop(ctx, time.Second, queueKey).Result()
	if errors.Is(err, redis.Nil) {
		return Task{}, false, nil
	}
	if err != nil {
		return Task{}, false, err
	}

	var t Task
	if err := json.Unmarshal([]byte(res[1]), &t); err != nil {
		return Task{}, false, fmt.Errorf("decode task: %w", err)
	}
	return t, true, nil
}

// MemoryQueue is a channel-backed queue for tests and single-process runs.
type MemoryQueue struct {
	ch chan Task
}

func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{ch: make(chan Task, size)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, t Task) error {
	select {
	case q.ch <- t:
		return nil
	default:
		return errors.New("task queue full")
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Task, bool, error) {
	select {
	case t := <-q.ch:
		return t, true, nil
	case <-time.After(50 * time.Millisecond):
		return Task{}, false, nil
	case <-ctx.Done():
		return Task{}, false, ctx.Err()
	}
}

// Len reports queued tasks, for tests.
func (q *MemoryQueue) Len() int { return len(q.ch) }
