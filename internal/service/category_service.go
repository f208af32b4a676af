package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context, spec query.Spec) ([]entity.Category, error)
	Count(ctx context.Context, where string, args []any) (int64, error)
	Update(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	if category.Name == "" {
		return nil, apperr.Validation("category name is required")
	}
	category.Slug = GenerateSlug(category.Name)
	if _, err := s.repo.GetBySlug(ctx, category.Slug); err == nil {
		return nil, apperr.Conflict("category %q already exists", category.Name)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return s.repo.Create(ctx, category)
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("category %d not found", id)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("category %q not found", slug)
		}
		return nil, err
	}
	return category, nil
}

var categorySortFields = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

func (s *CategoryService) List(ctx context.Context, params map[string]string) ([]entity.Category, query.Meta, error) {
	b := query.New(params).
		Search("name", "description").
		Sort(categorySortFields).
		Paginate()

	categories, err := s.repo.List(ctx, b.Build())
	if err != nil {
		return nil, query.Meta{}, err
	}
	meta, err := b.Meta(ctx, s.repo.Count)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return categories, meta, nil
}

func (s *CategoryService) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	current, err := s.GetByID(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	if category.Name != "" && category.Name != current.Name {
		category.Slug = GenerateSlug(category.Name)
	} else {
		category.Name = current.Name
		category.Slug = current.Slug
	}
	return s.repo.Update(ctx, category)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
