package services

import (
	"context"
	"errors"
	"log"

	"webshop/cart"
	"webshop/models"
	"webshop/tasks"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderStore is the persistence surface the order flow needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

type OrderService struct {
	orders OrderStore
	queue  tasks.Queue
}

func NewOrderService(orders OrderStore, queue tasks.Queue) *OrderService {
	return &OrderService{orders: orders, queue: queue}
}

// PlaceOrder turns the cart's enriched lines into a persisted order, clears
// the cart, and enqueues the confirmation email. The email is fire-and-forget:
// an enqueue failure is logged and never rolls the order back.
func (s *OrderService) PlaceOrder(ctx context.Context, crt *cart.Cart, catalog cart.Catalog, req models.CreateOrderRequest) (*models.Order, error) {
	lines, err := crt.Lines(ctx, catalog)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		City:       req.City,
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.Product.ID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	crt.Clear()

	if err := s.queue.Enqueue(ctx, tasks.NewOrderCreated(order.ID)); err != nil {
		log.Printf("order %d created but notification enqueue failed: %v", order.ID, err)
	}

	return order, nil
}
