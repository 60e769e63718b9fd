package tasks

import (
	"context"
	"encoding/json"
	"log"
)

type Handler func(ctx context.Context, payload json.RawMessage) error

// Worker drains a queue and dispatches each task to its registered handler.
type Worker struct {
	queue    Dequeuer
	handlers map[string]Handler
}

func NewWorker(queue Dequeuer) *Worker {
	return &Worker{queue: queue, handlers: map[string]Handler{}}
}

func (w *Worker) Register(name string, h Handler) {
	w.handlers[name] = h
}

// Run processes tasks until ctx is cancelled. Handler errors are logged and
// the worker moves on; there is no retry policy here.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		task, ok, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("tasks: dequeue failed: %v", err)
			continue
		}
		if !ok {
			continue
		}

		w.dispatch(ctx, task)
	}
}

// RunOnce processes at most one task, for tests.
func (w *Worker) RunOnce(ctx context.Context) bool {
	task, ok, err := w.queue.Dequeue(ctx)
	if err != nil || !ok {
		return false
	}
	w.dispatch(ctx, task)
	return true
}

func (w *Worker) dispatch(ctx context.Context, task Task) {
	h, ok := w.handlers[task.Name]
	if !ok {
		log.Printf("tasks: no handler registered for %q, dropping", task.Name)
		return
	}
	if err := h(ctx, task.Payload); err != nil {
		log.Printf("tasks: %s failed: %v", task.Name, err)
	}
}
