package repositories

import (
	"context"
	"time"

	"webshop/config"
	"webshop/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateOrder inserts the order and its items in one transaction.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (first_name, last_name, email, address, postal_code, city, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, $8)
		RETURNING id, created_at, updated_at
	`, order.FirstName, order.LastName, order.Email, order.Address,
		order.PostalCode, order.City, now, now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, price, quantity)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, item.OrderID, item.ProductID, item.Price, item.Quantity).Scan(&item.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int) (*models.Order, error) {
	var o models.Order
	err := config.DB.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, address, postal_code, city, paid, created_at, updated_at
		FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.Address,
		&o.PostalCode, &o.City, &o.Paid, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := config.DB.Query(ctx, `
		SELECT id, order_id, product_id, price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

func (r *OrderRepository) GetAllOrders(ctx context.Context, page, limit int) ([]models.Order, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := config.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := config.DB.Query(ctx, `
		SELECT id, first_name, last_name, email, address, postal_code, city, paid, created_at, updated_at
		FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.FirstName, &o.LastName, &o.Email, &o.Address,
			&o.PostalCode, &o.City, &o.Paid, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}
