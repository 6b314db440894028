package services

import (
	"context"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/repository"
)

type AnalyticsService struct {
	Repo *repository.AnalyticsRepository
}

func NewAnalyticsService(r *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{Repo: r}
}

func (s *AnalyticsService) Stats(ctx context.Context) (*repository.StoreStats, error) {
	return s.Repo.Stats(ctx)
}

func (s *AnalyticsService) TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	return s.Repo.TopProducts(ctx, limit)
}
