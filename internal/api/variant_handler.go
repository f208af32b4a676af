package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type VariantHandler struct {
	variants *service.VariantService
}

func NewVariantHandler(variants *service.VariantService) *VariantHandler {
	return &VariantHandler{variants: variants}
}

// Create adds a variant to a product --> POST /variants
func (h *VariantHandler) Create(c echo.Context) error {
	v := entity.Variant{}
	if err := c.Bind(&v); err != nil {
		return invalidPayload(c)
	}
	created, err := h.variants.Create(c.Request().Context(), &v)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "variant created", created)
}

// List pages through variants --> GET /variants
func (h *VariantHandler) List(c echo.Context) error {
	variants, meta, err := h.variants.List(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "variants retrieved", variants, meta)
}

// LowStock lists variants at or below their threshold --> GET /variants/low-stock
func (h *VariantHandler) LowStock(c echo.Context) error {
	variants, meta, err := h.variants.LowStock(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "low stock variants retrieved", variants, meta)
}

// GetByID retrieves one variant --> GET /variants/:id
func (h *VariantHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	v, err := h.variants.GetByID(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", v)
}

// Update modifies a variant --> PUT /variants/:id
func (h *VariantHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	v := entity.Variant{}
	if err := c.Bind(&v); err != nil {
		return invalidPayload(c)
	}
	v.ID = id
	updated, err := h.variants.Update(c.Request().Context(), &v)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "variant updated", updated)
}

// Delete removes a variant --> DELETE /variants/:id
func (h *VariantHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	if err := h.variants.Delete(c.Request().Context(), id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "variant deleted", nil)
}
