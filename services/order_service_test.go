package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"webshop/cart"
	"webshop/models"
	"webshop/services"
	"webshop/sessions"
	"webshop/tasks"
)

type fakeOrderStore struct {
	created *models.Order
	err     error
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	order.ID = 42
	f.created = order
	return nil
}

type stubCatalog struct {
	products map[int]models.Product
}

func (s *stubCatalog) ProductsByIDs(ctx context.Context, ids []int) ([]models.Product, error) {
	out := []models.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func checkoutRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Address:    "1 Analytical Way",
		PostalCode: "1815",
		City:       "London",
	}
}

func cartWith(t *testing.T, products ...models.Product) (*cart.Cart, *stubCatalog) {
	t.Helper()
	sess, err := sessions.NewMemoryStore().Load(context.Background(), "visitor")
	require.NoError(t, err)
	crt, err := cart.New(sess)
	require.NoError(t, err)

	catalog := &stubCatalog{products: map[int]models.Product{}}
	for i := range products {
		catalog.products[products[i].ID] = products[i]
		require.NoError(t, crt.Add(&products[i], 2, false))
	}
	return crt, catalog
}

func TestPlaceOrderCreatesOrderFromCart(t *testing.T) {
	store := &fakeOrderStore{}
	queue := tasks.NewMemoryQueue(8)
	svc := services.NewOrderService(store, queue)

	crt, catalog := cartWith(t, models.Product{ID: 7, Price: decimal.RequireFromString("19.99"), Available: true})

	order, err := svc.PlaceOrder(context.Background(), crt, catalog, checkoutRequest())
	require.NoError(t, err)
	require.Equal(t, 42, order.ID)
	require.Equal(t, "Ada", order.FirstName)
	require.Len(t, order.Items, 1)
	require.Equal(t, 7, order.Items[0].ProductID)
	require.Equal(t, 2, order.Items[0].Quantity)
	require.True(t, decimal.RequireFromString("39.98").Equal(order.TotalCost()))

	// The cart is cleared and the notification queued.
	require.Equal(t, 0, crt.Len())
	task, ok, err := queue.Dequeue(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, tasks.TaskOrderCreated, task.Name)

	var payload tasks.OrderCreatedPayload
	require.NoError(t, json.Unmarshal(task.Payload, &payload))
	require.Equal(t, 42, payload.OrderID)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	store := &fakeOrderStore{}
	queue := tasks.NewMemoryQueue(8)
	svc := services.NewOrderService(store, queue)

	crt, catalog := cartWith(t)

	_, err := svc.PlaceOrder(context.Background(), crt, catalog, checkoutRequest())
	require.ErrorIs(t, err, services.ErrEmptyCart)
	require.Equal(t, 0, queue.Len())
}

func TestPlaceOrderKeepsCartOnStoreFailure(t *testing.T) {
	store := &fakeOrderStore{err: errors.New("db down")}
	queue := tasks.NewMemoryQueue(8)
	svc := services.NewOrderService(store, queue)

	crt, catalog := cartWith(t, models.Product{ID: 7, Price: decimal.RequireFromString("19.99"), Available: true})

	_, err := svc.PlaceOrder(context.Background(), crt, catalog, checkoutRequest())
	require.Error(t, err)
	require.Equal(t, 2, crt.Len())
	require.Equal(t, 0, queue.Len())
}

func TestPlaceOrderEnqueueFailureDoesNotFailOrder(t *testing.T) {
	store := &fakeOrderStore{}
	queue := tasks.NewMemoryQueue(0) // always full
	svc := services.NewOrderService(store, queue)

	crt, catalog := cartWith(t, models.Product{ID: 7, Price: decimal.RequireFromString("19.99"), Available: true})

	order, err := svc.PlaceOrder(context.Background(), crt, catalog, checkoutRequest())
	require.NoError(t, err)
	require.Equal(t, 42, order.ID)
}
