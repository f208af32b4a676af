package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type BrandHandler struct {
	brands *service.BrandService
}

func NewBrandHandler(brands *service.BrandService) *BrandHandler {
	return &BrandHandler{brands: brands}
}

// Create adds a brand --> POST /brands
func (h *BrandHandler) Create(c echo.Context) error {
	brand := entity.Brand{}
	if err := c.Bind(&brand); err != nil {
		return invalidPayload(c)
	}
	created, err := h.brands.Create(c.Request().Context(), &brand)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "brand created", created)
}

// List pages through brands --> GET /brands
func (h *BrandHandler) List(c echo.Context) error {
	brands, meta, err := h.brands.List(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "brands retrieved", brands, meta)
}

// GetBySlug retrieves one brand --> GET /brands/slug/:slug
func (h *BrandHandler) GetBySlug(c echo.Context) error {
	brand, err := h.brands.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", brand)
}

// GetByID retrieves one brand --> GET /brands/:id
func (h *BrandHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	brand, err := h.brands.GetByID(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", brand)
}

// Update modifies a brand --> PUT /brands/:id
func (h *BrandHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	brand := entity.Brand{}
	if err := c.Bind(&brand); err != nil {
		return invalidPayload(c)
	}
	brand.ID = id
	updated, err := h.brands.Update(c.Request().Context(), &brand)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "brand updated", updated)
}

// Delete removes a brand --> DELETE /brands/:id
func (h *BrandHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	if err := h.brands.Delete(c.Request().Context(), id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "brand deleted", nil)
}
