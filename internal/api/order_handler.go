package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Checkout creates an order from cart lines or a single variant
// --> POST /orders/checkout
func (h *OrderHandler) Checkout(c echo.Context) error {
	in := service.CheckoutInput{}
	if err := c.Bind(&in); err != nil {
		return invalidPayload(c)
	}
	in.IdempotencyKey = c.Request().Header.Get("Idempotent-Key")

	ident := identity(c)
	order, err := h.orders.Checkout(c.Request().Context(), ident, in)
	if err != nil {
		return Fail(c, err)
	}
	if ident.IsGuest() && order.GuestID != "" {
		c.Response().Header().Set(sessionHeader, order.GuestID)
	}
	return OK(c, http.StatusCreated, "order created", order)
}

// GetByID retrieves one order --> GET /orders/:id
func (h *OrderHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	order, err := h.orders.GetByID(c.Request().Context(), identity(c), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", order)
}

// ListMine lists the caller's orders --> GET /orders/my
func (h *OrderHandler) ListMine(c echo.Context) error {
	orders, meta, err := h.orders.ListMine(c.Request().Context(), identity(c), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "orders retrieved", orders, meta)
}

// List lists all orders --> GET /orders
func (h *OrderHandler) List(c echo.Context) error {
	orders, meta, err := h.orders.List(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "orders retrieved", orders, meta)
}

// UpdateStatus advances the order lifecycle --> PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	in := struct {
		Status entity.OrderStatus `json:"status"`
	}{}
	if err := c.Bind(&in); err != nil {
		return invalidPayload(c)
	}
	order, err := h.orders.UpdateStatus(c.Request().Context(), id, in.Status)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "order status updated", order)
}

// Cancel cancels the caller's order --> POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	order, err := h.orders.Cancel(c.Request().Context(), identity(c), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "order cancelled", order)
}

// Delete permanently removes an order --> DELETE /orders/:id
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	if err := h.orders.Delete(c.Request().Context(), identity(c), id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "order deleted", nil)
}
