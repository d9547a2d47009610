package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/dayplan/internal/memory"
	"github.com/mohammad-safakhou/dayplan/internal/store"
)

// OpsHandler exposes operational endpoints (counts, recent activity).
type OpsHandler struct {
	Store         *store.Store
	Memory        *memory.Index
	EventsLimit   int
	DecisionLimit int
}

// Register mounts ops endpoints under the provided group.
func (h *OpsHandler) Register(g *echo.Group) {
	g.GET("/summary", h.summary)
	g.GET("/events", h.events)
	g.GET("/decisions", h.decisions)
}

func (h *OpsHandler) summary(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"store":  h.Store.Summary(),
		"memory": h.Memory.Summary(),
	})
}

func (h *OpsHandler) events(c echo.Context) error {
	limit := h.EventsLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}
	return c.JSON(http.StatusOK, h.Store.RecentEvents(limit))
}

func (h *OpsHandler) decisions(c echo.Context) error {
	limit := h.DecisionLimit
	if limit <= 0 {
		limit = 5
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}
	return c.JSON(http.StatusOK, h.Store.RecentDecisions(limit))
}
