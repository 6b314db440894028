package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

type ReviewStore interface {
	Create(ctx context.Context, rv *model.Review) (string, error)
	List(ctx context.Context, approvedOnly bool) ([]model.Review, error)
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ReviewService struct {
	Repo ReviewStore
}

func NewReviewService(r ReviewStore) *ReviewService {
	return &ReviewService{Repo: r}
}

// Submit stores a new review. Reviews start unapproved and only show up
// publicly once an admin approves them.
func (s *ReviewService) Submit(ctx context.Context, rv *model.Review) (string, error) {
	if strings.TrimSpace(rv.Name) == "" {
		return "", errors.New("name is required")
	}
	if strings.TrimSpace(rv.Comment) == "" {
		return "", errors.New("comment is required")
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return "", errors.New("rating must be between 1 and 5")
	}
	return s.Repo.Create(ctx, rv)
}

// ListPublic returns approved reviews only
func (s *ReviewService) ListPublic(ctx context.Context) ([]model.Review, error) {
	return s.Repo.List(ctx, true)
}

// ListAll returns everything, including pending reviews (admin)
func (s *ReviewService) ListAll(ctx context.Context) ([]model.Review, error) {
	return s.Repo.List(ctx, false)
}

func (s *ReviewService) Approve(ctx context.Context, id string) error {
	return s.Repo.Approve(ctx, id)
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
