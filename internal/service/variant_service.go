package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type VariantRepository interface {
	Create(ctx context.Context, v *entity.Variant) (*entity.Variant, error)
	GetByID(ctx context.Context, id int64) (*entity.Variant, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Variant, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Variant, error)
	List(ctx context.Context, spec query.Spec) ([]entity.Variant, error)
	Count(ctx context.Context, where string, args []any) (int64, error)
	Update(ctx context.Context, v *entity.Variant) (*entity.Variant, error)
	Delete(ctx context.Context, id int64) error
}

// VariantCache is the read-through cache for variant rows; GetVariant
// returns nil on a miss.
type VariantCache interface {
	GetVariant(ctx context.Context, id int64) (*entity.Variant, error)
	SetVariant(ctx context.Context, v *entity.Variant) error
	InvalidateVariant(ctx context.Context, id int64) error
}

type VariantService struct {
	repo     VariantRepository
	products ProductRepository
	cache    VariantCache
}

func NewVariantService(repo VariantRepository, products ProductRepository, cache VariantCache) *VariantService {
	return &VariantService{repo: repo, products: products, cache: cache}
}

// Create attaches a variant to its product. A missing SKU is generated
// from the product name and size; a missing price falls back to the
// product base price.
func (s *VariantService) Create(ctx context.Context, v *entity.Variant) (*entity.Variant, error) {
	if v.Size == "" {
		return nil, apperr.Validation("variant size is required")
	}
	product, err := s.products.GetByID(ctx, v.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Validation("product %d does not exist", v.ProductID)
		}
		return nil, err
	}

	if v.SKU == "" {
		v.SKU = GenerateSKU(product.Name, v.Size)
	} else if _, err := s.repo.GetBySKU(ctx, v.SKU); err == nil {
		return nil, apperr.Conflict("sku %q already exists", v.SKU)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if v.Price <= 0 {
		v.Price = product.Price
	}
	if v.Stock < 0 {
		return nil, apperr.Validation("variant stock cannot be negative")
	}
	return s.repo.Create(ctx, v)
}

func (s *VariantService) GetByID(ctx context.Context, id int64) (*entity.Variant, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetVariant(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("variant %d not found", id)
		}
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetVariant(ctx, v); err != nil {
			logger.Warn().Err(err).Int64("variant_id", id).Msg("failed to cache variant")
		}
	}
	return v, nil
}

var variantFilters = map[string]query.Predicate{
	"productId": query.Equals("product_id"),
	"size":      query.Equals("size"),
	"minPrice":  query.Min("price"),
	"maxPrice":  query.Max("price"),
	"minStock":  query.Min("stock"),
}

var variantSortFields = map[string]string{
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
}

func (s *VariantService) List(ctx context.Context, params map[string]string) ([]entity.Variant, query.Meta, error) {
	b := query.New(params).
		Filter(variantFilters).
		Search("sku", "size").
		Sort(variantSortFields).
		Paginate()

	variants, err := s.repo.List(ctx, b.Build())
	if err != nil {
		return nil, query.Meta{}, err
	}
	meta, err := b.Meta(ctx, s.repo.Count)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return variants, meta, nil
}

// LowStock lists variants at or below their own low stock threshold.
func (s *VariantService) LowStock(ctx context.Context, params map[string]string) ([]entity.Variant, query.Meta, error) {
	b := query.New(params).
		And("stock <= low_stock_threshold").
		DefaultSort("stock ASC").
		Sort(variantSortFields).
		Paginate()

	variants, err := s.repo.List(ctx, b.Build())
	if err != nil {
		return nil, query.Meta{}, err
	}
	meta, err := b.Meta(ctx, s.repo.Count)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return variants, meta, nil
}

func (s *VariantService) Update(ctx context.Context, v *entity.Variant) (*entity.Variant, error) {
	current, err := s.GetByID(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	v.ProductID = current.ProductID
	if v.SKU == "" {
		v.SKU = current.SKU
	}
	if v.Size == "" {
		v.Size = current.Size
	}
	if v.Price <= 0 {
		v.Price = current.Price
	}
	if v.Stock < 0 {
		return nil, apperr.Validation("variant stock cannot be negative")
	}
	updated, err := s.repo.Update(ctx, v)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, v.ID)
	return updated, nil
}

func (s *VariantService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *VariantService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateVariant(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("variant_id", id).Msg("failed to invalidate cached variant")
	}
}
