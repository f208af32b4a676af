package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) (*entity.Review, error)
	GetByID(ctx context.Context, id int64) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]entity.Review, error)
	List(ctx context.Context, spec query.Spec) ([]entity.Review, error)
	Count(ctx context.Context, where string, args []any) (int64, error)
	Update(ctx context.Context, review *entity.Review) (*entity.Review, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewService struct {
	repo     ReviewRepository
	products ProductRepository
}

func NewReviewService(repo ReviewRepository, products ProductRepository) *ReviewService {
	return &ReviewService{repo: repo, products: products}
}

func (s *ReviewService) Create(ctx context.Context, ident entity.Identity, review *entity.Review) (*entity.Review, error) {
	if ident.IsGuest() {
		return nil, apperr.Forbidden("only registered users can review products")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}
	if _, err := s.products.GetByID(ctx, review.ProductID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("product %d not found", review.ProductID)
		}
		return nil, err
	}
	review.UserID = ident.UserID
	return s.repo.Create(ctx, review)
}

func (s *ReviewService) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("review %d not found", id)
		}
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID int64) ([]entity.Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// Review list predicates qualify columns because the listing joins users
// and products for display names.
var reviewFilters = map[string]query.Predicate{
	"productId": query.Equals("r.product_id"),
	"userId":    query.Equals("r.user_id"),
	"minRating": query.Min("r.rating"),
	"maxRating": query.Max("r.rating"),
}

var reviewSortFields = map[string]string{
	"rating":    "r.rating",
	"createdAt": "r.created_at",
}

func (s *ReviewService) List(ctx context.Context, params map[string]string) ([]entity.Review, query.Meta, error) {
	b := query.New(params).
		Filter(reviewFilters).
		Search("r.comment", "p.name").
		DefaultSort("r.created_at DESC").
		Sort(reviewSortFields).
		Paginate()

	reviews, err := s.repo.List(ctx, b.Build())
	if err != nil {
		return nil, query.Meta{}, err
	}
	meta, err := b.Meta(ctx, s.repo.Count)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return reviews, meta, nil
}

func (s *ReviewService) Update(ctx context.Context, ident entity.Identity, review *entity.Review) (*entity.Review, error) {
	current, err := s.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	if current.UserID != ident.UserID {
		return nil, apperr.Forbidden("review %d does not belong to you", review.ID)
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}
	review.ProductID = current.ProductID
	review.UserID = current.UserID
	return s.repo.Update(ctx, review)
}

// Delete is allowed for the review author and for admins.
func (s *ReviewService) Delete(ctx context.Context, ident entity.Identity, id int64) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != ident.UserID && !ident.IsAdmin() {
		return apperr.Forbidden("review %d does not belong to you", id)
	}
	return s.repo.Delete(ctx, id)
}
