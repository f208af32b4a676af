package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) (*entity.Brand, error)
	GetByID(ctx context.Context, id int64) (*entity.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Brand, error)
	List(ctx context.Context, spec query.Spec) ([]entity.Brand, error)
	Count(ctx context.Context, where string, args []any) (int64, error)
	Update(ctx context.Context, brand *entity.Brand) (*entity.Brand, error)
	Delete(ctx context.Context, id int64) error
}

type BrandService struct {
	repo BrandRepository
}

func NewBrandService(repo BrandRepository) *BrandService {
	return &BrandService{repo: repo}
}

func (s *BrandService) Create(ctx context.Context, brand *entity.Brand) (*entity.Brand, error) {
	if brand.Name == "" {
		return nil, apperr.Validation("brand name is required")
	}
	brand.Slug = GenerateSlug(brand.Name)
	if _, err := s.repo.GetBySlug(ctx, brand.Slug); err == nil {
		return nil, apperr.Conflict("brand %q already exists", brand.Name)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return s.repo.Create(ctx, brand)
}

func (s *BrandService) GetByID(ctx context.Context, id int64) (*entity.Brand, error) {
	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("brand %d not found", id)
		}
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) GetBySlug(ctx context.Context, slug string) (*entity.Brand, error) {
	brand, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("brand %q not found", slug)
		}
		return nil, err
	}
	return brand, nil
}

var brandSortFields = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

func (s *BrandService) List(ctx context.Context, params map[string]string) ([]entity.Brand, query.Meta, error) {
	b := query.New(params).
		Search("name", "country").
		Sort(brandSortFields).
		Paginate()

	brands, err := s.repo.List(ctx, b.Build())
	if err != nil {
		return nil, query.Meta{}, err
	}
	meta, err := b.Meta(ctx, s.repo.Count)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return brands, meta, nil
}

func (s *BrandService) Update(ctx context.Context, brand *entity.Brand) (*entity.Brand, error) {
	current, err := s.GetByID(ctx, brand.ID)
	if err != nil {
		return nil, err
	}
	if brand.Name != "" && brand.Name != current.Name {
		brand.Slug = GenerateSlug(brand.Name)
	} else {
		brand.Name = current.Name
		brand.Slug = current.Slug
	}
	return s.repo.Update(ctx, brand)
}

func (s *BrandService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
