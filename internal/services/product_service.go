package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/repository"
)

// ObjectStore holds product images; keys become public URLs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type ProductService struct {
	Repo   *repository.ProductRepository
	Images ObjectStore
}

func NewProductService(r *repository.ProductRepository, images ObjectStore) *ProductService {
	return &ProductService{Repo: r, Images: images}
}

func (s *ProductService) validate(p *model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if p.Price < 0 {
		return errors.New("price must not be negative")
	}
	if p.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, p *model.Product) (string, error) {
	if err := s.validate(p); err != nil {
		return "", err
	}
	return s.Repo.Create(ctx, p)
}

func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	return s.Repo.List(ctx, limit, offset)
}

func (s *ProductService) Update(ctx context.Context, p *model.Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.Repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// UploadImage stores the image under a random key and records its public URL
// on the product.
func (s *ProductService) UploadImage(ctx context.Context, productID, filename, contentType string, r io.Reader) (string, error) {
	if s.Images == nil {
		return "", errors.New("image storage not configured")
	}
	if _, err := s.Repo.GetByID(ctx, productID); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	key := uuid.NewString() + ext
	url, err := s.Images.Upload(ctx, key, r, contentType)
	if err != nil {
		return "", err
	}
	if err := s.Repo.SetImageURL(ctx, productID, url); err != nil {
		return "", err
	}
	return url, nil
}
