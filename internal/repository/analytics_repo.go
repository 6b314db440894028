package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository struct {
	DB *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

type StoreStats struct {
	Customers int     `json:"customers"`
	Orders    int     `json:"orders"`
	Revenue   float64 `json:"revenue"`
	Products  int     `json:"products"`
}

type TopProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// Stats collects the dashboard headline numbers. Revenue counts completed
// orders only.
func (r *AnalyticsRepository) Stats(ctx context.Context) (*StoreStats, error) {
	var s StoreStats
	query := `
		SELECT
			(SELECT count(*) FROM profiles),
			(SELECT count(*) FROM orders),
			(SELECT COALESCE(sum(total), 0) FROM orders WHERE status='completed'),
			(SELECT count(*) FROM products)
	`
	if err := r.DB.QueryRow(ctx, query).
		Scan(&s.Customers, &s.Orders, &s.Revenue, &s.Products); err != nil {
		return nil, err
	}
	return &s, nil
}

// TopProducts ranks products by units sold across all orders.
func (r *AnalyticsRepository) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	query := `
		SELECT oi.product_id, p.name,
		       COALESCE(sum(oi.quantity), 0) AS units,
		       COALESCE(sum(oi.quantity * oi.price), 0) AS revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY oi.product_id, p.name
		ORDER BY units DESC
		LIMIT $1
	`
	rows, err := r.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopProduct
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.UnitsSold, &tp.Revenue); err != nil {
			return nil, err
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}
