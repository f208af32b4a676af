package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) CreateOrder(ctx context.Context, order *entity.Order, cartItemIDs []int64) (*entity.Order, error) {
	args := m.Called(ctx, order, cartItemIDs)
	if o, ok := args.Get(0).(*entity.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*entity.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, deliveryStatus entity.DeliveryStatus) error {
	return m.Called(ctx, id, status, deliveryStatus).Error(0)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrderRepo) List(ctx context.Context, spec query.Spec) ([]entity.Order, error) {
	args := m.Called(ctx, spec)
	if o, ok := args.Get(0).([]entity.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) Count(ctx context.Context, where string, queryArgs []any) (int64, error) {
	args := m.Called(ctx, where, queryArgs)
	return args.Get(0).(int64), args.Error(1)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) AddItem(ctx context.Context, userID int64, sessionID string, variantID int64, qty int) (*entity.Cart, error) {
	args := m.Called(ctx, userID, sessionID, variantID, qty)
	if c, ok := args.Get(0).(*entity.Cart); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartRepo) SetItemQuantity(ctx context.Context, cart *entity.Cart, variantID int64, qty int) error {
	return m.Called(ctx, cart, variantID, qty).Error(0)
}

func (m *mockCartRepo) RemoveItem(ctx context.Context, cart *entity.Cart, variantID int64) error {
	return m.Called(ctx, cart, variantID).Error(0)
}

func (m *mockCartRepo) GetActiveCart(ctx context.Context, userID int64, sessionID string) (*entity.Cart, error) {
	args := m.Called(ctx, userID, sessionID)
	if c, ok := args.Get(0).(*entity.Cart); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartRepo) GetLines(ctx context.Context, cartID int64) ([]entity.CartLine, error) {
	args := m.Called(ctx, cartID)
	if l, ok := args.Get(0).([]entity.CartLine); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCartRepo) GetLinesByIDs(ctx context.Context, ids []int64) ([]entity.CartLine, error) {
	args := m.Called(ctx, ids)
	if l, ok := args.Get(0).([]entity.CartLine); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockVariantRepo struct{ mock.Mock }

func (m *mockVariantRepo) Create(ctx context.Context, v *entity.Variant) (*entity.Variant, error) {
	args := m.Called(ctx, v)
	if out, ok := args.Get(0).(*entity.Variant); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVariantRepo) GetByID(ctx context.Context, id int64) (*entity.Variant, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*entity.Variant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVariantRepo) GetBySKU(ctx context.Context, sku string) (*entity.Variant, error) {
	args := m.Called(ctx, sku)
	if v, ok := args.Get(0).(*entity.Variant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVariantRepo) GetByIDs(ctx context.Context, ids []int64) ([]entity.Variant, error) {
	args := m.Called(ctx, ids)
	if v, ok := args.Get(0).([]entity.Variant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVariantRepo) List(ctx context.Context, spec query.Spec) ([]entity.Variant, error) {
	args := m.Called(ctx, spec)
	if v, ok := args.Get(0).([]entity.Variant); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVariantRepo) Count(ctx context.Context, where string, queryArgs []any) (int64, error) {
	args := m.Called(ctx, where, queryArgs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVariantRepo) Update(ctx context.Context, v *entity.Variant) (*entity.Variant, error) {
	args := m.Called(ctx, v)
	if out, ok := args.Get(0).(*entity.Variant); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVariantRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	args := m.Called(ctx, p)
	if out, ok := args.Get(0).(*entity.Product); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*entity.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	args := m.Called(ctx, slug)
	if p, ok := args.Get(0).(*entity.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, spec query.Spec) ([]entity.Product, error) {
	args := m.Called(ctx, spec)
	if p, ok := args.Get(0).([]entity.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Count(ctx context.Context, where string, queryArgs []any) (int64, error) {
	args := m.Called(ctx, where, queryArgs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	args := m.Called(ctx, p)
	if out, ok := args.Get(0).(*entity.Product); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) BestSellers(ctx context.Context, limit, offset int) ([]entity.BestSeller, error) {
	args := m.Called(ctx, limit, offset)
	if b, ok := args.Get(0).([]entity.BestSeller); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockIdempotencyStore struct{ mock.Mock }

func (m *mockIdempotencyStore) ClaimIdempotencyKey(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) PublishOrderEvent(ctx context.Context, order *entity.Order, event string) error {
	return m.Called(ctx, order, event).Error(0)
}
