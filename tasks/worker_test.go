package tasks_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"webshop/models"
	"webshop/tasks"
)

func TestWorkerDispatchesToRegisteredHandler(t *testing.T) {
	ctx := context.Background()
	queue := tasks.NewMemoryQueue(8)
	worker := tasks.NewWorker(queue)

	var got string
	worker.Register("greet", func(ctx context.Context, payload json.RawMessage) error {
		got = string(payload)
		return nil
	})

	require.NoError(t, queue.Enqueue(ctx, tasks.Task{Name: "greet", Payload: json.RawMessage(`"hi"`)}))
	require.True(t, worker.RunOnce(ctx))
	require.Equal(t, `"hi"`, got)
}

func TestWorkerDropsUnknownTask(t *testing.T) {
	ctx := context.Background()
	queue := tasks.NewMemoryQueue(8)
	worker := tasks.NewWorker(queue)

	require.NoError(t, queue.Enqueue(ctx, tasks.Task{Name: "unknown"}))
	require.True(t, worker.RunOnce(ctx))
	require.Equal(t, 0, queue.Len())
}

func TestWorkerSurvivesHandlerError(t *testing.T) {
	ctx := context.Background()
	queue := tasks.NewMemoryQueue(8)
	worker := tasks.NewWorker(queue)

	worker.Register("boom", func(ctx context.Context, payload json.RawMessage) error {
		return errors.New("smtp down")
	})

	require.NoError(t, queue.Enqueue(ctx, tasks.Task{Name: "boom"}))
	require.True(t, worker.RunOnce(ctx))
}

type fakeOrders struct {
	order *models.Order
	err   error
}

func (f *fakeOrders) GetOrderByID(ctx context.Context, id int) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

type fakeMailer struct {
	subject string
	body    string
	from    string
	to      []string
	err     error
}

func (f *fakeMailer) Send(subject, body, from string, to ...string) error {
	f.subject, f.body, f.from, f.to = subject, body, from, to
	return f.err
}

func TestOrderCreatedSendsConfirmation(t *testing.T) {
	orders := &fakeOrders{order: &models.Order{ID: 7, FirstName: "Ada", Email: "ada@example.com"}}
	mailer := &fakeMailer{}
	h := &tasks.OrderCreatedHandler{Orders: orders, Mailer: mailer, From: "admin@webshop.com"}

	task := tasks.NewOrderCreated(7)
	require.NoError(t, h.Handle(context.Background(), task.Payload))

	require.Equal(t, "Order nr. 7", mailer.subject)
	require.Contains(t, mailer.body, "Dear Ada.")
	require.Contains(t, mailer.body, "Your order id is 7.")
	require.Equal(t, "admin@webshop.com", mailer.from)
	require.Equal(t, []string{"ada@example.com"}, mailer.to)
}

func TestOrderCreatedPropagatesMailFailure(t *testing.T) {
	orders := &fakeOrders{order: &models.Order{ID: 7, FirstName: "Ada", Email: "ada@example.com"}}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	h := &tasks.OrderCreatedHandler{Orders: orders, Mailer: mailer, From: "admin@webshop.com"}

	task := tasks.NewOrderCreated(7)
	require.Error(t, h.Handle(context.Background(), task.Payload))
}

func TestOrderCreatedFailsOnMissingOrder(t *testing.T) {
	orders := &fakeOrders{err: errors.New("no rows")}
	h := &tasks.OrderCreatedHandler{Orders: orders, Mailer: &fakeMailer{}, From: "admin@webshop.com"}

	task := tasks.NewOrderCreated(404)
	require.Error(t, h.Handle(context.Background(), task.Payload))
}
