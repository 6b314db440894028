package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

var orderStatuses = map[string]bool{
	"pending":    true,
	"processing": true,
	"completed":  true,
	"cancelled":  true,
}

// CreateFromCart writes the order, its item snapshot and the stock decrement
// in one transaction, then clears the cart. The stock update is conditional
// so an oversell fails the whole checkout.
func (r *OrderRepository) CreateFromCart(ctx context.Context, userID string, items []model.CartItem, total float64, phone, address string) (*model.Order, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	orderID := uuid.NewString()
	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, total, status, phone, address)
		VALUES ($1, $2, $3, 'pending', $4, $5)
	`, orderID, userID, total, phone, address); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.NewString(), orderID, it.ProductID, it.Quantity, it.Price); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $1
			WHERE id=$2 AND stock >= $1
		`, it.Quantity, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, fmt.Errorf("insufficient stock for '%s'", it.Name)
		}
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id=$1`, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &model.Order{
		ID:      orderID,
		UserID:  userID,
		Total:   total,
		Status:  "pending",
		Phone:   &phone,
		Address: &address,
	}, nil
}

// ListByUser returns a customer's own orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := `SELECT id, user_id, total, status, phone, address, created_at FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.Phone, &o.Address, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListAll returns every order with the customer's profile attached (admin view).
func (r *OrderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.total, o.status, o.phone, o.address, o.created_at,
		       p.email, p.full_name
		FROM orders o
		JOIN profiles p ON p.id = o.user_id
		ORDER BY o.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.Phone, &o.Address, &o.CreatedAt,
			&o.CustomerEmail, &o.CustomerName); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// ListItems returns the item snapshot for an order, joined with product names.
func (r *OrderRepository) ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id=$1
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// UpdateStatus moves an order to a new status
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	if !orderStatuses[status] {
		return errors.New("invalid order status")
	}
	query := `UPDATE orders SET status=$1 WHERE id=$2`
	tag, err := r.DB.Exec(ctx, query, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("order not found")
	}
	return nil
}
