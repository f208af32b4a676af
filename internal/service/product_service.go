package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) (*entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	List(ctx context.Context, spec query.Spec) ([]entity.Product, error)
	Count(ctx context.Context, where string, args []any) (int64, error)
	Update(ctx context.Context, p *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, id int64) error
	BestSellers(ctx context.Context, limit, offset int) ([]entity.BestSeller, error)
}

type ProductService struct {
	repo       ProductRepository
	brands     BrandRepository
	categories CategoryRepository
}

func NewProductService(repo ProductRepository, brands BrandRepository, categories CategoryRepository) *ProductService {
	return &ProductService{repo: repo, brands: brands, categories: categories}
}

// productFilters maps the public query keys to column predicates. Keys
// outside this table never reach SQL.
var productFilters = map[string]query.Predicate{
	"isActive":     query.Bool("is_active"),
	"isNew":        query.Bool("is_new"),
	"isFeatured":   query.Bool("is_featured"),
	"isTrending":   query.Bool("is_trending"),
	"isBestSeller": query.Bool("is_best_seller"),
	"brandId":      query.Equals("brand_id"),
	"categoryId":   query.Equals("category_id"),
	"minPrice":     query.Min("price"),
	"maxPrice":     query.Max("price"),
}

var productSortFields = map[string]string{
	"price":     "price",
	"name":      "name",
	"discount":  "discount",
	"createdAt": "created_at",
}

var productSearchFields = []string{"name", "slug", "description"}

func (s *ProductService) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	if p.Name == "" {
		return nil, apperr.Validation("product name is required")
	}
	if p.Price <= 0 {
		return nil, apperr.Validation("product price must be positive")
	}
	if _, err := s.brands.GetByID(ctx, p.BrandID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Validation("brand %d does not exist", p.BrandID)
		}
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, p.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Validation("category %d does not exist", p.CategoryID)
		}
		return nil, err
	}

	p.Slug = GenerateSlug(p.Name)
	if _, err := s.repo.GetBySlug(ctx, p.Slug); err == nil {
		return nil, apperr.Conflict("product %q already exists", p.Name)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	logger.Info().Int64("product_id", created.ID).Str("slug", created.Slug).Msg("product created")
	return created, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("product %d not found", id)
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("product %q not found", slug)
		}
		return nil, err
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, params map[string]string) ([]entity.Product, query.Meta, error) {
	b := query.New(params).
		Filter(productFilters).
		Search(productSearchFields...).
		Sort(productSortFields).
		Paginate()
	return s.list(ctx, b)
}

// ListByCategory scopes the full product query pipeline to one category
// slug; the usual filters, search and sort still apply on top.
func (s *ProductService) ListByCategory(ctx context.Context, slug string, params map[string]string) ([]entity.Product, query.Meta, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, query.Meta{}, apperr.NotFound("category %q not found", slug)
		}
		return nil, query.Meta{}, err
	}
	b := query.New(params).
		Filter(productFilters).
		Search(productSearchFields...).
		And("category_id = ?", category.ID).
		Sort(productSortFields).
		Paginate()
	return s.list(ctx, b)
}

func (s *ProductService) ListByBrand(ctx context.Context, slug string, params map[string]string) ([]entity.Product, query.Meta, error) {
	brand, err := s.brands.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, query.Meta{}, apperr.NotFound("brand %q not found", slug)
		}
		return nil, query.Meta{}, err
	}
	b := query.New(params).
		Filter(productFilters).
		Search(productSearchFields...).
		And("brand_id = ?", brand.ID).
		Sort(productSortFields).
		Paginate()
	return s.list(ctx, b)
}

func (s *ProductService) list(ctx context.Context, b *query.Builder) ([]entity.Product, query.Meta, error) {
	products, err := s.repo.List(ctx, b.Build())
	if err != nil {
		return nil, query.Meta{}, err
	}
	meta, err := b.Meta(ctx, s.repo.Count)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return products, meta, nil
}

// BestSellers ranks products by units sold across completed orders.
func (s *ProductService) BestSellers(ctx context.Context, params map[string]string) ([]entity.BestSeller, error) {
	spec := query.New(params).Paginate().Build()
	return s.repo.BestSellers(ctx, spec.Limit, spec.Offset)
}

func (s *ProductService) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	current, err := s.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if p.Name != "" && p.Name != current.Name {
		p.Slug = GenerateSlug(p.Name)
	} else {
		p.Name = current.Name
		p.Slug = current.Slug
	}
	if p.Price <= 0 {
		p.Price = current.Price
	}
	if p.BrandID == 0 {
		p.BrandID = current.BrandID
	}
	if p.CategoryID == 0 {
		p.CategoryID = current.CategoryID
	}
	return s.repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
