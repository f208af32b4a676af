package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sufiansar/GloryShoppingBackend/internal/service"
)

type StatsHandler struct {
	stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Orders reports order counts, revenue and top variants --> GET /stats/orders
func (h *StatsHandler) Orders(c echo.Context) error {
	stats, err := h.stats.OrderStats(c.Request().Context())
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "order stats retrieved", stats)
}

// Users reports user counts per role --> GET /stats/users
func (h *StatsHandler) Users(c echo.Context) error {
	stats, err := h.stats.UserStats(c.Request().Context())
	if err != nil {
		return Fail(c, err)
	}
	return OK(c, http.StatusOK, "user stats retrieved", stats)
}
