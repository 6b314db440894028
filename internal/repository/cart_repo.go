package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type CartRepository struct {
	DB *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{DB: db}
}

// AddOrIncrement inserts a cart row or bumps the quantity when the product
// is already in the cart.
func (r *CartRepository) AddOrIncrement(ctx context.Context, userID, productID string, qty int) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	_, err := r.DB.Exec(ctx, query, uuid.NewString(), userID, productID, qty)
	return err
}

// SetQuantity sets the exact quantity for a cart row
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	query := `UPDATE cart_items SET quantity=$1 WHERE user_id=$2 AND product_id=$3`
	tag, err := r.DB.Exec(ctx, query, qty, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("cart item not found")
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`
	_, err := r.DB.Exec(ctx, query, userID, productID)
	return err
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	query := `DELETE FROM cart_items WHERE user_id=$1`
	_, err := r.DB.Exec(ctx, query, userID)
	return err
}

// ListByUser returns cart items joined with their product rows
func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]model.CartItem, error) {
	query := `
		SELECT ci.id, ci.product_id, p.name, p.price, p.image_url, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id=$1
		ORDER BY ci.created_at
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.Price, &it.ImageURL, &it.Quantity); err != nil {
			return nil, err
		}
		it.Subtotal = it.Price * float64(it.Quantity)
		items = append(items, it)
	}
	return items, rows.Err()
}
