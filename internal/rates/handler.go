package rates

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// HistorySource supplies historical market data for a single asset.
type HistorySource interface {
	MarketChart(ctx context.Context, coinID string, days int) (json.RawMessage, error)
}

// Handler exposes pricing endpoints.
type Handler struct {
	provider Provider
	history  HistorySource
}

// NewHandler builds a pricing HTTP handler.
func NewHandler(provider Provider, history HistorySource) *Handler {
	return &Handler{provider: provider, history: history}
}

// Current returns the live-or-fallback rate table.
func (h *Handler) Current(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.provider.Current(c.UserContext()))
}

// History proxies historical series data. Unlike Current, upstream failures
// surface to the caller: there is no fallback data for arbitrary ranges.
func (h *Handler) History(c *fiber.Ctx) error {
	coinID := c.Query("id", "bitcoin")
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		return fiber.NewError(http.StatusBadRequest, "days must be a positive integer")
	}

	payload, err := h.history.MarketChart(c.UserContext(), coinID, days)
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(http.StatusOK).Send(payload)
}
