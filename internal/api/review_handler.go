package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create posts a review --> POST /reviews
func (h *ReviewHandler) Create(c echo.Context) error {
	review := entity.Review{}
	if err := c.Bind(&review); err != nil {
		return invalidPayload(c)
	}
	created, err := h.reviews.Create(c.Request().Context(), identity(c), &review)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusCreated, "review created", created)
}

// List pages through reviews --> GET /reviews
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, meta, err := h.reviews.List(c.Request().Context(), query.Params(c.QueryParams()))
	if err != nil {
		return Fail(c, err)
	}
	return OKList(c, "reviews retrieved", reviews, meta)
}

// Update edits the caller's review --> PUT /reviews/:id
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	review := entity.Review{}
	if err := c.Bind(&review); err != nil {
		return invalidPayload(c)
	}
	review.ID = id
	updated, err := h.reviews.Update(c.Request().Context(), identity(c), &review)
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "review updated", updated)
}

// Delete removes a review --> DELETE /reviews/:id
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return invalidID(c)
	}
	if err := h.reviews.Delete(c.Request().Context(), identity(c), id); err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "review deleted", nil)
}
