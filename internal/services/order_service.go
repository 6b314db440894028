package services

import (
	"context"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/repository"
)

type OrderService struct {
	Repo *repository.OrderRepository
}

func NewOrderService(r *repository.OrderRepository) *OrderService {
	return &OrderService{Repo: r}
}

// ListMine returns the customer's own orders with their items attached.
func (s *OrderService) ListMine(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := s.Repo.ListItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// ListAll is the admin view: every order with the customer attached.
func (s *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.Repo.ListAll(ctx)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) error {
	return s.Repo.UpdateStatus(ctx, orderID, status)
}
