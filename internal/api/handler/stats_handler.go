package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/grust-community/admin-panel/internal/api/middleware"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

// StatsHandler serves the shaped community aggregate.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get serves GET /api/stats?days=3|5|7. The window defaults to the full
// 7-day series.
//
// @Summary      Community statistics
// @Tags         stats
// @Produce      json
// @Param        days  query  int  false  "Trailing window: 3, 5 or 7 (default 7)"
// @Success      200  {object}  statsResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	days := 7
	if raw := c.QueryParam("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || (v != 3 && v != 5 && v != 7) {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be 3, 5 or 7")
		}
		days = v
	}

	stats, err := h.service.Fetch(c.Request().Context(), middleware.CredentialFrom(c), days)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsResponse{Success: true, Data: stats})
}
