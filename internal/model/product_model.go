package model

import "time"

type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	Description *string    `json:"description,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}
