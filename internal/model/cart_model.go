package model

// CartItem is what the API exposes (joined with the product row)
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartResponse is returned when calling GET /cart
type CartResponse struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Total    float64    `json:"total"`
}
