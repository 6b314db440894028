package services

import (
	"context"
	"errors"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

// TaxRate is applied on the cart subtotal at checkout.
const TaxRate = 0.15

type CartStore interface {
	AddOrIncrement(ctx context.Context, userID, productID string, qty int) error
	SetQuantity(ctx context.Context, userID, productID string, qty int) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	ListByUser(ctx context.Context, userID string) ([]model.CartItem, error)
}

type CheckoutStore interface {
	CreateFromCart(ctx context.Context, userID string, items []model.CartItem, total float64, phone, address string) (*model.Order, error)
}

type ProductReader interface {
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// OrderNotifier fans out order emails. Failures must never fail the order,
// so it reports nothing back.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, customerEmail string, order *model.Order, items []model.OrderItem)
}

type CartService struct {
	Repo     CartStore
	Orders   CheckoutStore
	Products ProductReader
	Notifier OrderNotifier
}

func NewCartService(r CartStore, or CheckoutStore, pr ProductReader, n OrderNotifier) *CartService {
	return &CartService{
		Repo:     r,
		Orders:   or,
		Products: pr,
		Notifier: n,
	}
}

func (s *CartService) Add(ctx context.Context, userID, productID string, qty int) error {
	if qty <= 0 {
		qty = 1
	}
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.Stock <= 0 {
		return errors.New("product out of stock")
	}
	return s.Repo.AddOrIncrement(ctx, userID, productID, qty)
}

// Update sets quantity for an item in the cart
func (s *CartService) Update(ctx context.Context, userID, productID string, qty int) error {
	if qty <= 0 {
		return errors.New("quantity must be > 0")
	}
	return s.Repo.SetQuantity(ctx, userID, productID, qty)
}

// Remove removes an item from the cart
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	return s.Repo.Remove(ctx, userID, productID)
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.Repo.Clear(ctx, userID)
}

// Get returns the cart with subtotal, tax and total
func (s *CartService) Get(ctx context.Context, userID string) (*model.CartResponse, error) {
	items, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.CartItem{}
	}
	resp := &model.CartResponse{Items: items}
	for _, it := range items {
		resp.Subtotal += it.Subtotal
	}
	resp.Tax = resp.Subtotal * TaxRate
	resp.Total = resp.Subtotal + resp.Tax
	return resp, nil
}

// Checkout turns the cart into a pending order and fans out notification
// emails. The order is committed before any email is attempted; a failed
// send is logged by the notifier, never surfaced to the buyer.
func (s *CartService) Checkout(ctx context.Context, userID, email, phone, address string) (*model.Order, error) {
	items, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("cart is empty")
	}

	var subtotal float64
	for _, it := range items {
		subtotal += it.Subtotal
	}
	total := subtotal + subtotal*TaxRate

	order, err := s.Orders.CreateFromCart(ctx, userID, items, total, phone, address)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		orderItems := make([]model.OrderItem, 0, len(items))
		for _, it := range items {
			orderItems = append(orderItems, model.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		s.Notifier.OrderPlaced(ctx, email, order, orderItems)
	}
	return order, nil
}
