package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type SectionHandler struct {
	sections *service.SectionService
}

func NewSectionHandler(sections *service.SectionService) *SectionHandler {
	return &SectionHandler{sections: sections}
}

// Create adds a storefront section --> POST /sections
func (h *SectionHandler) Create(c echo.Context) error {
	section := entity.Section{}
	if err := c.Bind(&section); err != nil {
		return invalidPayload(c)
	}
	created, err := h.sections.Create(c.Request().Context(), &section)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "section created", created)
}

// List pages through sections --> GET /sections
func (h *SectionHandler) List(c echo.Context) error {
	sections, meta, err := h.sections.List(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "sections retrieved", sections, meta)
}

// GetByID retrieves one section --> GET /sections/:id
func (h *SectionHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	section, err := h.sections.GetByID(c.Request().Context(), id)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "", section)
}

// Update modifies a section --> PUT /sections/:id
func (h *SectionHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	section := entity.Section{}
	if err := c.Bind(&section); err != nil {
		return invalidPayload(c)
	}
	section.ID = id
	updated, err := h.sections.Update(c.Request().Context(), &section)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "section updated", updated)
}

// Delete removes a section --> DELETE /sections/:id
func (h *SectionHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	if err := h.sections.Delete(c.Request().Context(), id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "section deleted", nil)
}
