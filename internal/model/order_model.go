package model

import "time"

// Order represents an entry in the orders table
type Order struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Total     float64    `json:"total"`
	Status    string     `json:"status"`
	Phone     *string    `json:"phone,omitempty"`
	Address   *string    `json:"address,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`

	// filled on admin listings
	CustomerEmail string  `json:"customer_email,omitempty"`
	CustomerName  *string `json:"customer_name,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots the product price at purchase time
type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
