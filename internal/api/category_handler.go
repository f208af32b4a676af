package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type CategoryHandler struct {
	categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create adds a category --> POST /categories
func (h *CategoryHandler) Create(c echo.Context) error {
	category := entity.Category{}
	if err := c.Bind(&category); err != nil {
		return invalidPayload(c)
	}
	created, err := h.categories.Create(c.Request().Context(), &category)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "category created", created)
}

// List pages through categories --> GET /categories
func (h *CategoryHandler) List(c echo.Context) error {
	categories, meta, err := h.categories.List(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "categories retrieved", categories, meta)
}

// GetBySlug retrieves one category --> GET /categories/slug/:slug
func (h *CategoryHandler) GetBySlug(c echo.Context) error {
	category, err := h.categories.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", category)
}

// GetByID retrieves one category --> GET /categories/:id
func (h *CategoryHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	category, err := h.categories.GetByID(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", category)
}

// Update modifies a category --> PUT /categories/:id
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	category := entity.Category{}
	if err := c.Bind(&category); err != nil {
		return invalidPayload(c)
	}
	category.ID = id
	updated, err := h.categories.Update(c.Request().Context(), &category)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "category updated", updated)
}

// Delete removes a category --> DELETE /categories/:id
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	if err := h.categories.Delete(c.Request().Context(), id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "category deleted", nil)
}
