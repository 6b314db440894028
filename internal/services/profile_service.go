package services

import (
	"context"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/repository"
)

type ProfileService struct {
	Repo *repository.UserRepository
}

func NewProfileService(r *repository.UserRepository) *ProfileService {
	return &ProfileService{Repo: r}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	return s.Repo.GetProfile(ctx, userID)
}

func (s *ProfileService) Update(ctx context.Context, userID string, fullName, phone, address *string) error {
	return s.Repo.UpdateProfile(ctx, userID, fullName, phone, address)
}

// RoleFor returns the account's role, defaulting to "user"
func (s *ProfileService) RoleFor(ctx context.Context, userID string) (string, error) {
	return s.Repo.RoleFor(ctx, userID)
}
