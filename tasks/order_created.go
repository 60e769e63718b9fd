package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"webshop/mail"
	"webshop/models"
)

const TaskOrderCreated = "order_created"

type OrderCreatedPayload struct {
	OrderID int `json:"order_id"`
}

// NewOrderCreated builds the task enqueued right after an order is stored.
func NewOrderCreated(orderID int) Task {
	payload, _ := json.Marshal(OrderCreatedPayload{OrderID: orderID})
	return Task{Name: TaskOrderCreated, Payload: payload}
}

// OrderGetter is the slice of the order store the notification needs.
type OrderGetter interface {
	GetOrderByID(ctx context.Context, id int) (*models.Order, error)
}

// OrderCreatedHandler sends the order confirmation email to the purchaser.
type OrderCreatedHandler struct {
	Orders OrderGetter
	Mailer mail.Mailer
	From   string
}

func (h *OrderCreatedHandler) Handle(ctx context.Context, payload json.RawMessage) error {
	var p OrderCreatedPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode order_created payload: %w", err)
	}

	order, err := h.Orders.GetOrderByID(ctx, p.OrderID)
	if err != nil {
		return fmt.Errorf("load order %d: %w", p.OrderID, err)
	}

	subject, body := ComposeOrderCreated(order)
	if err := h.Mailer.Send(subject, body, h.From, order.Email); err != nil {
		return fmt.Errorf("send confirmation for order %d: %w", order.ID, err)
	}
	return nil
}

// ComposeOrderCreated renders the fixed confirmation template.
func ComposeOrderCreated(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("Order nr. %d", order.ID)
	body = fmt.Sprintf(
		"Dear %s.\n\nYou have successfully placed an order. Your order id is %d.",
		order.FirstName, order.ID,
	)
	return subject, body
}
