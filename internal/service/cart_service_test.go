package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
)

type cartFixture struct {
	carts    *mockCartRepo
	variants *mockVariantRepo
	svc      *CartService
}

func newCartFixture() *cartFixture {
	f := &cartFixture{carts: &mockCartRepo{}, variants: &mockVariantRepo{}}
	f.svc = NewCartService(f.carts, f.variants)
	return f
}

func TestAddToCartMintsGuestSession(t *testing.T) {
	f := newCartFixture()

	f.variants.On("GetByID", mock.Anything, int64(101)).
		Return(&entity.Variant{ID: 101, SKU: "HYDRA-30ML", Price: 150, Stock: 10}, nil)
	f.carts.On("AddItem", mock.Anything, int64(0), mock.MatchedBy(func(sid string) bool {
		_, err := uuid.Parse(sid)
		return err == nil
	}), int64(101), 2).Return(&entity.Cart{ID: 4, Status: entity.CartActive}, nil)
	f.carts.On("GetLines", mock.Anything, int64(4)).Return([]entity.CartLine{
		{CartItemID: 1, CartID: 4, VariantID: 101, Quantity: 2, UnitPrice: 150},
	}, nil)

	cart, sessionID, err := f.svc.AddToCart(context.Background(), entity.Identity{}, 101, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.Len(t, cart.Items, 1)
	f.carts.AssertExpectations(t)
}

func TestAddToCartKeepsExistingGuestSession(t *testing.T) {
	f := newCartFixture()

	f.variants.On("GetByID", mock.Anything, int64(101)).
		Return(&entity.Variant{ID: 101, Stock: 10}, nil)
	f.carts.On("AddItem", mock.Anything, int64(0), "guest-1", int64(101), 1).
		Return(&entity.Cart{ID: 4, SessionID: "guest-1", Status: entity.CartActive}, nil)
	f.carts.On("GetLines", mock.Anything, int64(4)).Return([]entity.CartLine{}, nil)

	_, sessionID, err := f.svc.AddToCart(context.Background(), entity.Identity{GuestID: "guest-1"}, 101, 1)
	require.NoError(t, err)
	assert.Equal(t, "guest-1", sessionID)
}

func TestAddToCartUserHasNoSession(t *testing.T) {
	f := newCartFixture()

	f.variants.On("GetByID", mock.Anything, int64(101)).
		Return(&entity.Variant{ID: 101, Stock: 10}, nil)
	f.carts.On("AddItem", mock.Anything, int64(9), "", int64(101), 1).
		Return(&entity.Cart{ID: 4, UserID: 9, Status: entity.CartActive}, nil)
	f.carts.On("GetLines", mock.Anything, int64(4)).Return([]entity.CartLine{}, nil)

	_, sessionID, err := f.svc.AddToCart(context.Background(), entity.Identity{UserID: 9, Role: entity.RoleUser}, 101, 1)
	require.NoError(t, err)
	assert.Empty(t, sessionID)
}

func TestAddToCartRejectsInsufficientStock(t *testing.T) {
	f := newCartFixture()

	f.variants.On("GetByID", mock.Anything, int64(101)).
		Return(&entity.Variant{ID: 101, SKU: "HYDRA-30ML", Stock: 1}, nil)

	_, _, err := f.svc.AddToCart(context.Background(), entity.Identity{UserID: 9}, 101, 3)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
	f.carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddToCartUnknownVariant(t *testing.T) {
	f := newCartFixture()

	f.variants.On("GetByID", mock.Anything, int64(999)).Return(nil, sql.ErrNoRows)

	_, _, err := f.svc.AddToCart(context.Background(), entity.Identity{UserID: 9}, 999, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(err))
}

func TestUpdateItemZeroQuantityRemovesLine(t *testing.T) {
	f := newCartFixture()
	cart := &entity.Cart{ID: 4, UserID: 9, Status: entity.CartActive}

	f.carts.On("GetActiveCart", mock.Anything, int64(9), "").Return(cart, nil)
	f.carts.On("RemoveItem", mock.Anything, cart, int64(101)).Return(nil)
	f.carts.On("GetLines", mock.Anything, int64(4)).Return([]entity.CartLine{}, nil)

	_, err := f.svc.UpdateItem(context.Background(), entity.Identity{UserID: 9}, 101, 0)
	require.NoError(t, err)
	f.carts.AssertNotCalled(t, "SetItemQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateItemSetsAbsoluteQuantity(t *testing.T) {
	f := newCartFixture()
	cart := &entity.Cart{ID: 4, UserID: 9, Status: entity.CartActive}

	f.carts.On("GetActiveCart", mock.Anything, int64(9), "").Return(cart, nil)
	f.carts.On("SetItemQuantity", mock.Anything, cart, int64(101), 5).Return(nil)
	f.carts.On("GetLines", mock.Anything, int64(4)).Return([]entity.CartLine{
		{CartItemID: 1, CartID: 4, VariantID: 101, Quantity: 5},
	}, nil)

	updated, err := f.svc.UpdateItem(context.Background(), entity.Identity{UserID: 9}, 101, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Items[0].Quantity)
}

func TestUpdateItemMissingLine(t *testing.T) {
	f := newCartFixture()
	cart := &entity.Cart{ID: 4, UserID: 9, Status: entity.CartActive}

	f.carts.On("GetActiveCart", mock.Anything, int64(9), "").Return(cart, nil)
	f.carts.On("SetItemQuantity", mock.Anything, cart, int64(999), 2).Return(sql.ErrNoRows)

	_, err := f.svc.UpdateItem(context.Background(), entity.Identity{UserID: 9}, 999, 2)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(err))
}

func TestGetCartNoActiveCart(t *testing.T) {
	f := newCartFixture()

	f.carts.On("GetActiveCart", mock.Anything, int64(9), "").Return(nil, sql.ErrNoRows)

	_, err := f.svc.GetCart(context.Background(), entity.Identity{UserID: 9})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(err))
}
