package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/notify"
)

type orderFixture struct {
	orders   *mockOrderRepo
	carts    *mockCartRepo
	variants *mockVariantRepo
	products *mockProductRepo
	idem     *mockIdempotencyStore
	notifier *mockNotifier
	svc      *OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:   &mockOrderRepo{},
		carts:    &mockCartRepo{},
		variants: &mockVariantRepo{},
		products: &mockProductRepo{},
		idem:     &mockIdempotencyStore{},
		notifier: &mockNotifier{},
	}
	f.svc = NewOrderService(f.orders, f.carts, f.variants, f.products, f.idem, f.notifier)
	return f
}

func validDelivery() DeliveryInput {
	return DeliveryInput{
		Email:   "buyer@example.com",
		Phone:   "01700000000",
		Address: "12 Lake Road",
		City:    "Dhaka",
		Charge:  60,
	}
}

func TestCheckoutCartAmountIncludesDeliveryCharge(t *testing.T) {
	f := newOrderFixture()
	ident := entity.Identity{UserID: 9, Role: entity.RoleUser}

	f.carts.On("GetActiveCart", mock.Anything, int64(9), "").
		Return(&entity.Cart{ID: 3, UserID: 9, Status: entity.CartActive}, nil)
	f.carts.On("GetLinesByIDs", mock.Anything, []int64{11, 12}).Return([]entity.CartLine{
		{CartItemID: 11, CartID: 3, VariantID: 101, ProductName: "Hydra Serum", UnitPrice: 250, Quantity: 2},
		{CartItemID: 12, CartID: 3, VariantID: 102, ProductName: "Day Cream", UnitPrice: 400, Quantity: 1},
	}, nil)
	f.variants.On("GetByIDs", mock.Anything, []int64{101, 102}).Return([]entity.Variant{
		{ID: 101, Stock: 5}, {ID: 102, Stock: 5},
	}, nil)
	f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		return o.Amount == 960 && o.Status == entity.OrderPending &&
			len(o.Items) == 2 && o.Delivery != nil && o.Delivery.Status == entity.DeliveryProcessing
	}), []int64{11, 12}).Return(&entity.Order{ID: 77, Amount: 960, Status: entity.OrderPending}, nil)
	f.notifier.On("PublishOrderEvent", mock.Anything, mock.Anything, notify.EventCreated).Return(nil)

	order, err := f.svc.Checkout(context.Background(), ident, CheckoutInput{
		Type:        CheckoutCart,
		CartItemIDs: []int64{11, 12},
		Delivery:    validDelivery(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), order.ID)
	f.orders.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestCheckoutMissingCartItemCreatesNothing(t *testing.T) {
	f := newOrderFixture()
	ident := entity.Identity{UserID: 9, Role: entity.RoleUser}

	f.carts.On("GetActiveCart", mock.Anything, int64(9), "").
		Return(&entity.Cart{ID: 3, UserID: 9, Status: entity.CartActive}, nil)
	f.carts.On("GetLinesByIDs", mock.Anything, []int64{11, 999}).Return([]entity.CartLine{
		{CartItemID: 11, CartID: 3, VariantID: 101, UnitPrice: 250, Quantity: 2},
	}, nil)

	_, err := f.svc.Checkout(context.Background(), ident, CheckoutInput{
		Type:        CheckoutCart,
		CartItemIDs: []int64{11, 999},
		Delivery:    validDelivery(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(err))
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutForeignCartItemForbidden(t *testing.T) {
	f := newOrderFixture()
	ident := entity.Identity{UserID: 9, Role: entity.RoleUser}

	f.carts.On("GetActiveCart", mock.Anything, int64(9), "").
		Return(&entity.Cart{ID: 3, UserID: 9, Status: entity.CartActive}, nil)
	f.carts.On("GetLinesByIDs", mock.Anything, []int64{44}).Return([]entity.CartLine{
		{CartItemID: 44, CartID: 8, VariantID: 101, UnitPrice: 250, Quantity: 1},
	}, nil)

	_, err := f.svc.Checkout(context.Background(), ident, CheckoutInput{
		Type:        CheckoutCart,
		CartItemIDs: []int64{44},
		Delivery:    validDelivery(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.HTTPStatus(err))
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutDirect(t *testing.T) {
	f := newOrderFixture()
	ident := entity.Identity{GuestID: "guest-1"}

	f.variants.On("GetByID", mock.Anything, int64(101)).
		Return(&entity.Variant{ID: 101, ProductID: 5, SKU: "HYDRA-30ML", Price: 150, Stock: 10}, nil)
	f.products.On("GetByID", mock.Anything, int64(5)).
		Return(&entity.Product{ID: 5, Name: "Hydra Serum"}, nil)
	f.orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		return o.Amount == 360 && o.GuestID == "guest-1" && len(o.Items) == 1 &&
			o.Items[0].ProductName == "Hydra Serum" && o.Items[0].Quantity == 2
	}), []int64(nil)).Return(&entity.Order{ID: 80, Amount: 360}, nil)
	f.notifier.On("PublishOrderEvent", mock.Anything, mock.Anything, notify.EventCreated).Return(nil)

	order, err := f.svc.Checkout(context.Background(), ident, CheckoutInput{
		Type:      CheckoutDirect,
		VariantID: 101,
		Quantity:  2,
		Delivery:  validDelivery(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(80), order.ID)
	f.orders.AssertExpectations(t)
}

func TestCheckoutDirectAnonymousGuestMintsSessionID(t *testing.T) {
	f := newOrderFixture()

	f.variants.On("GetByID", mock.Anything, int64(101)).
		Return(&entity.Variant{ID: 101, ProductID: 5, SKU: "HYDRA-30ML", Price: 150, Stock: 10}, nil)
	f.products.On("GetByID", mock.Anything, int64(5)).
		Return(&entity.Product{ID: 5, Name: "Hydra Serum"}, nil)

	var created *entity.Order
	f.orders.On("CreateOrder", mock.Anything, mock.Anything, []int64(nil)).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.Order) }).
		Return(&entity.Order{ID: 82, Amount: 210}, nil)
	f.notifier.On("PublishOrderEvent", mock.Anything, mock.Anything, notify.EventCreated).Return(nil)

	_, err := f.svc.Checkout(context.Background(), entity.Identity{}, CheckoutInput{
		Type:      CheckoutDirect,
		VariantID: 101,
		Quantity:  1,
		Delivery:  validDelivery(),
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotEmpty(t, created.GuestID, "guest order must carry an owner session id")
	_, err = uuid.Parse(created.GuestID)
	assert.NoError(t, err)
	assert.Zero(t, created.UserID)
}

func TestCheckoutIdempotencyConflict(t *testing.T) {
	f := newOrderFixture()
	ident := entity.Identity{UserID: 9}

	f.idem.On("ClaimIdempotencyKey", mock.Anything, "key-1").Return(false, nil)

	_, err := f.svc.Checkout(context.Background(), ident, CheckoutInput{
		Type:           CheckoutDirect,
		VariantID:      101,
		Quantity:       1,
		Delivery:       validDelivery(),
		IdempotencyKey: "key-1",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.HTTPStatus(err))
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutPublishFailureDoesNotFailOrder(t *testing.T) {
	f := newOrderFixture()
	ident := entity.Identity{UserID: 9}

	f.variants.On("GetByID", mock.Anything, int64(101)).
		Return(&entity.Variant{ID: 101, ProductID: 5, SKU: "HYDRA-30ML", Price: 150, Stock: 10}, nil)
	f.products.On("GetByID", mock.Anything, int64(5)).
		Return(&entity.Product{ID: 5, Name: "Hydra Serum"}, nil)
	f.orders.On("CreateOrder", mock.Anything, mock.Anything, []int64(nil)).
		Return(&entity.Order{ID: 81, Amount: 210}, nil)
	f.notifier.On("PublishOrderEvent", mock.Anything, mock.Anything, notify.EventCreated).
		Return(errors.New("broker down"))

	order, err := f.svc.Checkout(context.Background(), ident, CheckoutInput{
		Type:      CheckoutDirect,
		VariantID: 101,
		Quantity:  1,
		Delivery:  validDelivery(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(81), order.ID)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newOrderFixture()

	f.variants.On("GetByID", mock.Anything, int64(101)).
		Return(&entity.Variant{ID: 101, ProductID: 5, SKU: "HYDRA-30ML", Price: 150, Stock: 1}, nil)

	_, err := f.svc.Checkout(context.Background(), entity.Identity{UserID: 9}, CheckoutInput{
		Type:      CheckoutDirect,
		VariantID: 101,
		Quantity:  5,
		Delivery:  validDelivery(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
}

func TestCheckoutCartInsufficientStock(t *testing.T) {
	f := newOrderFixture()
	ident := entity.Identity{UserID: 9, Role: entity.RoleUser}

	f.carts.On("GetActiveCart", mock.Anything, int64(9), "").
		Return(&entity.Cart{ID: 3, UserID: 9, Status: entity.CartActive}, nil)
	f.carts.On("GetLinesByIDs", mock.Anything, []int64{11}).Return([]entity.CartLine{
		{CartItemID: 11, CartID: 3, VariantID: 101, SKU: "HYDRA-30ML", UnitPrice: 250, Quantity: 4},
	}, nil)
	f.variants.On("GetByIDs", mock.Anything, []int64{101}).
		Return([]entity.Variant{{ID: 101, Stock: 2}}, nil)

	_, err := f.svc.Checkout(context.Background(), ident, CheckoutInput{
		Type:        CheckoutCart,
		CartItemIDs: []int64{11},
		Delivery:    validDelivery(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
	f.orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelSetsCancelledAndDeliveryCanceled(t *testing.T) {
	f := newOrderFixture()
	ident := entity.Identity{UserID: 9, Role: entity.RoleUser}

	f.orders.On("GetByID", mock.Anything, int64(77)).Return(&entity.Order{
		ID: 77, UserID: 9, Status: entity.OrderPending,
		Delivery: &entity.Delivery{Status: entity.DeliveryProcessing},
	}, nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(77), entity.OrderCancelled, entity.DeliveryCanceled).Return(nil)
	f.notifier.On("PublishOrderEvent", mock.Anything, mock.Anything, notify.EventCancelled).Return(nil)

	order, err := f.svc.Cancel(context.Background(), ident, 77)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, order.Status)
	assert.Equal(t, entity.DeliveryCanceled, order.Delivery.Status)
	f.orders.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestCancelNonOwnerForbidden(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(77)).
		Return(&entity.Order{ID: 77, UserID: 9, Status: entity.OrderPending}, nil)

	_, err := f.svc.Cancel(context.Background(), entity.Identity{UserID: 5, Role: entity.RoleUser}, 77)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.HTTPStatus(err))
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(77)).
		Return(&entity.Order{ID: 77, Status: entity.OrderCompleted}, nil)

	_, err := f.svc.UpdateStatus(context.Background(), 77, entity.OrderShipped)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusShippedSetsDeliveryOnTheWay(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(77)).Return(&entity.Order{
		ID: 77, Status: entity.OrderPending,
		Delivery: &entity.Delivery{Status: entity.DeliveryProcessing},
	}, nil)
	f.orders.On("UpdateStatus", mock.Anything, int64(77), entity.OrderShipped, entity.DeliveryOnTheWay).Return(nil)
	f.notifier.On("PublishOrderEvent", mock.Anything, mock.Anything, notify.EventStatus).Return(nil)

	order, err := f.svc.UpdateStatus(context.Background(), 77, entity.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, order.Status)
	assert.Equal(t, entity.DeliveryOnTheWay, order.Delivery.Status)
}

func TestDeleteRequiresSuperAdmin(t *testing.T) {
	f := newOrderFixture()

	err := f.svc.Delete(context.Background(), entity.Identity{UserID: 2, Role: entity.RoleAdmin}, 77)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.HTTPStatus(err))
	f.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetByIDOwnerAndGuestAccess(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(70)).
		Return(&entity.Order{ID: 70, GuestID: "guest-1", Status: entity.OrderPending}, nil)

	_, err := f.svc.GetByID(context.Background(), entity.Identity{GuestID: "guest-1"}, 70)
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), entity.Identity{GuestID: "guest-2"}, 70)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperr.HTTPStatus(err))
}

func TestGetByIDNotFound(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("GetByID", mock.Anything, int64(404)).Return(nil, sql.ErrNoRows)

	_, err := f.svc.GetByID(context.Background(), entity.Identity{UserID: 9, Role: entity.RoleAdmin}, 404)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.HTTPStatus(err))
}
