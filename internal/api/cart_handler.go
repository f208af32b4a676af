package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartItemPayload struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// AddItem adds quantity to the cart --> POST /cart/items
// Guests get a session id in the X-Session-Id response header; they
// must send it back on every later cart request.
func (h *CartHandler) AddItem(c echo.Context) error {
	in := cartItemPayload{}
	if err := c.Bind(&in); err != nil {
		return invalidPayload(c)
	}
	cart, sessionID, err := h.carts.AddToCart(c.Request().Context(), identity(c), in.VariantID, in.Quantity)
	if err != nil {
		return Fail(c, err)
	}
	if sessionID != "" {
		c.Response().Header().Set(sessionHeader, sessionID)
	}
	return OK(c, http.StatusOK, "item added to cart", cart)
}

// Get returns the active cart --> GET /cart
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.carts.GetCart(c.Request().Context(), identity(c))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", cart)
}

// UpdateItem sets an absolute line quantity --> PUT /cart/items/:variantId
func (h *CartHandler) UpdateItem(c echo.Context) error {
	variantID, err := strconv.ParseInt(c.Param("variantId"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	in := struct {
		Quantity int `json:"quantity"`
	}{}
	if err := c.Bind(&in); err != nil {
		return invalidPayload(c)
	}
	cart, err := h.carts.UpdateItem(c.Request().Context(), identity(c), variantID, in.Quantity)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "cart updated", cart)
}

// RemoveItem drops a line --> DELETE /cart/items/:variantId
func (h *CartHandler) RemoveItem(c echo.Context) error {
	variantID, err := strconv.ParseInt(c.Param("variantId"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	cart, err := h.carts.RemoveItem(c.Request().Context(), identity(c), variantID)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "item removed from cart", cart)
}
