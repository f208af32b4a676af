package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type ProductHandler struct {
	products *service.ProductService
	reviews  *service.ReviewService
}

func NewProductHandler(products *service.ProductService, reviews *service.ReviewService) *ProductHandler {
	return &ProductHandler{products: products, reviews: reviews}
}

// Create adds a product --> POST /products
func (h *ProductHandler) Create(c echo.Context) error {
	p := entity.Product{}
	if err := c.Bind(&p); err != nil {
		return invalidPayload(c)
	}
	created, err := h.products.Create(c.Request().Context(), &p)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "product created", created)
}

// List pages through products with filters, search and sort --> GET /products
func (h *ProductHandler) List(c echo.Context) error {
	products, meta, err := h.products.List(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "products retrieved", products, meta)
}

// GetBySlug retrieves a product with its variants --> GET /products/slug/:slug
func (h *ProductHandler) GetBySlug(c echo.Context) error {
	p, err := h.products.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", p)
}

// GetByID retrieves a product with its variants --> GET /products/:id
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	p, err := h.products.GetByID(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", p)
}

// ListByCategory scopes the product listing --> GET /categories/:slug/products
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	products, meta, err := h.products.ListByCategory(c.Request().Context(), c.Param("slug"), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "products retrieved", products, meta)
}

// ListByBrand scopes the product listing --> GET /brands/:slug/products
func (h *ProductHandler) ListByBrand(c echo.Context) error {
	products, meta, err := h.products.ListByBrand(c.Request().Context(), c.Param("slug"), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "products retrieved", products, meta)
}

// BestSellers ranks products by completed sales --> GET /products/best-sellers
func (h *ProductHandler) BestSellers(c echo.Context) error {
	best, err := h.products.BestSellers(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "best sellers retrieved", best)
}

// Update modifies a product --> PUT /products/:id
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	p := entity.Product{}
	if err := c.Bind(&p); err != nil {
		return invalidPayload(c)
	}
	p.ID = id
	updated, err := h.products.Update(c.Request().Context(), &p)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "product updated", updated)
}

// Delete removes a product --> DELETE /products/:id
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "product deleted", nil)
}

// Reviews lists a product's reviews --> GET /products/:id/reviews
func (h *ProductHandler) Reviews(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	reviews, err := h.reviews.ListByProduct(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "reviews retrieved", reviews)
}
