package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
)

type CartRepository interface {
	AddItem(ctx context.Context, userID int64, sessionID string, variantID int64, qty int) (*entity.Cart, error)
	SetItemQuantity(ctx context.Context, cart *entity.Cart, variantID int64, qty int) error
	RemoveItem(ctx context.Context, cart *entity.Cart, variantID int64) error
	GetActiveCart(ctx context.Context, userID int64, sessionID string) (*entity.Cart, error)
	GetLines(ctx context.Context, cartID int64) ([]entity.CartLine, error)
	GetLinesByIDs(ctx context.Context, ids []int64) ([]entity.CartLine, error)
}

type CartService struct {
	repo     CartRepository
	variants VariantRepository
}

func NewCartService(repo CartRepository, variants VariantRepository) *CartService {
	return &CartService{repo: repo, variants: variants}
}

// AddToCart adds quantity to the caller's active cart, creating the cart
// on first use. Guests without a session id get one minted here; callers
// must echo it back so the guest keeps the same cart.
func (s *CartService) AddToCart(ctx context.Context, ident entity.Identity, variantID int64, qty int) (*entity.Cart, string, error) {
	if qty < 1 {
		return nil, "", apperr.Validation("quantity must be at least 1")
	}
	variant, err := s.variants.GetByID(ctx, variantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", apperr.NotFound("variant %d not found", variantID)
		}
		return nil, "", err
	}
	if variant.Stock < qty {
		return nil, "", apperr.Validation("only %d units of %s in stock", variant.Stock, variant.SKU)
	}

	sessionID := ident.GuestID
	if ident.IsGuest() && sessionID == "" {
		sessionID = uuid.NewString()
	}
	if !ident.IsGuest() {
		sessionID = ""
	}

	cart, err := s.repo.AddItem(ctx, ident.UserID, sessionID, variantID, qty)
	if err != nil {
		return nil, "", err
	}
	cart.Items, err = s.repo.GetLines(ctx, cart.ID)
	if err != nil {
		return nil, "", err
	}
	return cart, sessionID, nil
}

// UpdateItem sets the absolute quantity of a cart line. A quantity of
// zero or less removes the line.
func (s *CartService) UpdateItem(ctx context.Context, ident entity.Identity, variantID int64, qty int) (*entity.Cart, error) {
	cart, err := s.activeCart(ctx, ident)
	if err != nil {
		return nil, err
	}
	if qty <= 0 {
		err = s.repo.RemoveItem(ctx, cart, variantID)
	} else {
		err = s.repo.SetItemQuantity(ctx, cart, variantID, qty)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("variant %d is not in the cart", variantID)
		}
		return nil, err
	}
	cart.Items, err = s.repo.GetLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, ident entity.Identity, variantID int64) (*entity.Cart, error) {
	return s.UpdateItem(ctx, ident, variantID, 0)
}

func (s *CartService) GetCart(ctx context.Context, ident entity.Identity) (*entity.Cart, error) {
	cart, err := s.activeCart(ctx, ident)
	if err != nil {
		return nil, err
	}
	cart.Items, err = s.repo.GetLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) activeCart(ctx context.Context, ident entity.Identity) (*entity.Cart, error) {
	cart, err := s.repo.GetActiveCart(ctx, ident.UserID, ident.GuestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no active cart")
		}
		return nil, err
	}
	return cart, nil
}
