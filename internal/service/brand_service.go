package service

import (
	"context"
	"strings"

	appErrors "github.com/unclebandit/marketing-ops-backend/internal/errors"
	"github.com/unclebandit/marketing-ops-backend/internal/model"
	"github.com/unclebandit/marketing-ops-backend/internal/repository"
)

type BrandInput struct {
	Name          string   `json:"brand_name"`
	Content       string   `json:"brand_content"`
	ProductLink   string   `json:"product_link"`
	ProductImages []string `json:"product_images"`
}

type BrandService struct {
	Brands repository.BrandRepositoryInterface
}

func (s *BrandService) List(ctx context.Context, byName bool) ([]*model.Brand, error) {
	return s.Brands.List(ctx, byName)
}

func (s *BrandService) Get(ctx context.Context, id int64) (*model.Brand, error) {
	return s.Brands.GetByID(ctx, id)
}

func (s *BrandService) Create(ctx context.Context, in BrandInput) (*model.Brand, error) {
	b, err := in.toBrand()
	if err != nil {
		return nil, err
	}
	if err := s.Brands.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BrandService) Update(ctx context.Context, id int64, in BrandInput) (*model.Brand, error) {
	existing, err := s.Brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := in.toBrand()
	if err != nil {
		return nil, err
	}
	b.ID = existing.ID
	b.UUID = existing.UUID
	b.CreatedAt = existing.CreatedAt
	if err := s.Brands.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BrandService) Delete(ctx context.Context, id int64) error {
	return s.Brands.Delete(ctx, id)
}

func (in BrandInput) toBrand() (*model.Brand, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, appErrors.NewValidation("Brand name is required")
	}
	b := &model.Brand{
		Name:        name,
		Content:     strings.TrimSpace(in.Content),
		ProductLink: trimmedOrNil(in.ProductLink),
	}
	for _, img := range in.ProductImages {
		if img = strings.TrimSpace(img); img != "" {
			b.ProductImages = append(b.ProductImages, img)
		}
	}
	return b, nil
}
