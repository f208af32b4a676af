package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/notify"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

const (
	CheckoutCart   = "CART"
	CheckoutDirect = "DIRECT"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *entity.Order, cartItemIDs []int64) (*entity.Order, error)
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus, deliveryStatus entity.DeliveryStatus) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, spec query.Spec) ([]entity.Order, error)
	Count(ctx context.Context, where string, args []any) (int64, error)
}

type IdempotencyStore interface {
	ClaimIdempotencyKey(ctx context.Context, key string) (bool, error)
}

type OrderNotifier interface {
	PublishOrderEvent(ctx context.Context, order *entity.Order, event string) error
}

type OrderService struct {
	repo     OrderRepository
	carts    CartRepository
	variants VariantRepository
	products ProductRepository
	idem     IdempotencyStore
	notifier OrderNotifier
	validate *validator.Validate
}

func NewOrderService(repo OrderRepository, carts CartRepository, variants VariantRepository, products ProductRepository, idem IdempotencyStore, notifier OrderNotifier) *OrderService {
	return &OrderService{
		repo:     repo,
		carts:    carts,
		variants: variants,
		products: products,
		idem:     idem,
		notifier: notifier,
		validate: validator.New(),
	}
}

type DeliveryInput struct {
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"required,max=30"`
	Address    string  `json:"address" validate:"required,max=255"`
	City       string  `json:"city" validate:"required,max=100"`
	PostalCode string  `json:"postal_code" validate:"omitempty,max=20"`
	Charge     float64 `json:"delivery_charge" validate:"gte=0"`
}

type CheckoutInput struct {
	Type           string        `json:"type" validate:"required,oneof=CART DIRECT"`
	CartItemIDs    []int64       `json:"cart_item_ids" validate:"required_if=Type CART"`
	VariantID      int64         `json:"variant_id" validate:"required_if=Type DIRECT"`
	Quantity       int           `json:"quantity"`
	Delivery       DeliveryInput `json:"delivery" validate:"required"`
	IdempotencyKey string        `json:"-"`
}

// Checkout turns cart lines or a single variant into a PENDING order.
// The order, its item snapshots, the delivery record and the cart-item
// consumption commit in one transaction; the created event is published
// only after that commit and a publish failure never fails the checkout.
func (s *OrderService) Checkout(ctx context.Context, ident entity.Identity, in CheckoutInput) (*entity.Order, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperr.Validation("invalid checkout payload: %v", err)
	}

	// A fresh guest gets an identity here, the same way AddToCart mints
	// one, so the order is never persisted ownerless.
	if ident.IsGuest() && ident.GuestID == "" {
		ident.GuestID = uuid.NewString()
	}

	if in.IdempotencyKey != "" {
		claimed, err := s.idem.ClaimIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, apperr.Conflict("checkout already processed for key %s", in.IdempotencyKey)
		}
	}

	var (
		items       []entity.OrderItem
		cartItemIDs []int64
		amount      float64
	)
	switch in.Type {
	case CheckoutCart:
		lines, err := s.resolveCartLines(ctx, ident, in.CartItemIDs)
		if err != nil {
			return nil, err
		}
		if err := s.checkLineStock(ctx, lines); err != nil {
			return nil, err
		}
		for _, line := range lines {
			items = append(items, entity.OrderItem{
				VariantID:   line.VariantID,
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				Price:       line.UnitPrice,
			})
			amount += line.UnitPrice * float64(line.Quantity)
		}
		cartItemIDs = in.CartItemIDs
	case CheckoutDirect:
		if in.Quantity < 1 {
			return nil, apperr.Validation("quantity must be at least 1")
		}
		variant, err := s.variants.GetByID(ctx, in.VariantID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.NotFound("variant %d not found", in.VariantID)
			}
			return nil, err
		}
		if variant.Stock < in.Quantity {
			return nil, apperr.Validation("only %d units of %s in stock", variant.Stock, variant.SKU)
		}
		product, err := s.products.GetByID(ctx, variant.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, entity.OrderItem{
			VariantID:   variant.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			Price:       variant.Price,
		})
		amount = variant.Price * float64(in.Quantity)
	}
	amount += in.Delivery.Charge

	order := &entity.Order{
		UserID:  ident.UserID,
		GuestID: ident.GuestID,
		Status:  entity.OrderPending,
		Amount:  amount,
		Items:   items,
		Delivery: &entity.Delivery{
			Email:      in.Delivery.Email,
			Phone:      in.Delivery.Phone,
			Address:    in.Delivery.Address,
			City:       in.Delivery.City,
			PostalCode: in.Delivery.PostalCode,
			Charge:     in.Delivery.Charge,
			Status:     entity.DeliveryProcessing,
		},
	}

	created, err := s.repo.CreateOrder(ctx, order, cartItemIDs)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.PublishOrderEvent(ctx, created, notify.EventCreated); err != nil {
		logger.Error().Err(err).Int64("order_id", created.ID).Msg("failed to publish order created event")
	}
	logger.Info().Int64("order_id", created.ID).Float64("amount", created.Amount).Msg("order created")
	return created, nil
}

// resolveCartLines loads the requested cart items and verifies every id
// exists and belongs to the caller's active cart.
func (s *OrderService) resolveCartLines(ctx context.Context, ident entity.Identity, ids []int64) ([]entity.CartLine, error) {
	if len(ids) == 0 {
		return nil, apperr.Validation("cart_item_ids must not be empty")
	}
	cart, err := s.carts.GetActiveCart(ctx, ident.UserID, ident.GuestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no active cart")
		}
		return nil, err
	}
	lines, err := s.carts.GetLinesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(lines) != len(ids) {
		return nil, apperr.NotFound("some cart items no longer exist")
	}
	for _, line := range lines {
		if line.CartID != cart.ID {
			return nil, apperr.Forbidden("cart item %d does not belong to your cart", line.CartItemID)
		}
	}
	return lines, nil
}

// checkLineStock validates every line against current stock in one query.
// Advisory only: the durable decrement happens in the stock consumer.
func (s *OrderService) checkLineStock(ctx context.Context, lines []entity.CartLine) error {
	ids := make([]int64, len(lines))
	for i, line := range lines {
		ids[i] = line.VariantID
	}
	variants, err := s.variants.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	stock := make(map[int64]int, len(variants))
	for _, v := range variants {
		stock[v.ID] = v.Stock
	}
	for _, line := range lines {
		if stock[line.VariantID] < line.Quantity {
			return apperr.Validation("only %d units of %s in stock", stock[line.VariantID], line.SKU)
		}
	}
	return nil
}

func (s *OrderService) GetByID(ctx context.Context, ident entity.Identity, id int64) (*entity.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("order %d not found", id)
		}
		return nil, err
	}
	if !s.canAccess(ident, order) {
		return nil, apperr.Forbidden("order %d does not belong to you", id)
	}
	return order, nil
}

// UpdateStatus moves an order along the lifecycle and keeps the delivery
// status in step inside the same transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) (*entity.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("order %d not found", id)
		}
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, apperr.Validation("cannot move order from %s to %s", order.Status, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status, entity.DeliveryStatusFor(status)); err != nil {
		return nil, err
	}
	order.Status = status
	if order.Delivery != nil {
		order.Delivery.Status = entity.DeliveryStatusFor(status)
	}

	event := notify.EventStatus
	if status == entity.OrderCancelled {
		event = notify.EventCancelled
	}
	if err := s.notifier.PublishOrderEvent(ctx, order, event); err != nil {
		logger.Error().Err(err).Int64("order_id", id).Msg("failed to publish order status event")
	}
	return order, nil
}

// Cancel is available to the order's owner and to admins, only while the
// lifecycle still allows it.
func (s *OrderService) Cancel(ctx context.Context, ident entity.Identity, id int64) (*entity.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("order %d not found", id)
		}
		return nil, err
	}
	if !s.canAccess(ident, order) {
		return nil, apperr.Forbidden("order %d does not belong to you", id)
	}
	return s.UpdateStatus(ctx, id, entity.OrderCancelled)
}

// Delete removes an order permanently. Reserved for super admins; normal
// flow is cancellation.
func (s *OrderService) Delete(ctx context.Context, ident entity.Identity, id int64) error {
	if ident.Role != entity.RoleSuperAdmin {
		return apperr.Forbidden("only super admins can delete orders")
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("order %d not found", id)
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

var orderFilters = map[string]query.Predicate{
	"status":    query.Equals("status"),
	"userId":    query.Equals("user_id"),
	"minAmount": query.Min("amount"),
	"maxAmount": query.Max("amount"),
}

var orderSortFields = map[string]string{
	"amount":    "amount",
	"orderDate": "order_date",
}

func (s *OrderService) List(ctx context.Context, params map[string]string) ([]entity.Order, query.Meta, error) {
	b := query.New(params).
		Filter(orderFilters).
		DefaultSort("order_date DESC").
		Sort(orderSortFields).
		Paginate()
	return s.list(ctx, b)
}

// ListMine scopes the order listing to the caller's own orders.
func (s *OrderService) ListMine(ctx context.Context, ident entity.Identity, params map[string]string) ([]entity.Order, query.Meta, error) {
	b := query.New(params).
		Filter(orderFilters).
		DefaultSort("order_date DESC").
		Sort(orderSortFields).
		Paginate()
	if ident.IsGuest() {
		b.And("guest_id = ?", ident.GuestID)
	} else {
		b.And("user_id = ?", ident.UserID)
	}
	return s.list(ctx, b)
}

func (s *OrderService) list(ctx context.Context, b *query.Builder) ([]entity.Order, query.Meta, error) {
	orders, err := s.repo.List(ctx, b.Build())
	if err != nil {
		return nil, query.Meta{}, err
	}
	meta, err := b.Meta(ctx, s.repo.Count)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return orders, meta, nil
}

func (s *OrderService) canAccess(ident entity.Identity, order *entity.Order) bool {
	if ident.IsAdmin() {
		return true
	}
	if !ident.IsGuest() {
		return order.UserID == ident.UserID
	}
	return ident.GuestID != "" && order.GuestID == ident.GuestID
}
