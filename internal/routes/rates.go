package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coinfolio/coinfolio/internal/rates"
)

// RegisterRatesRoutes wires the public pricing endpoints.
func RegisterRatesRoutes(r fiber.Router, h *rates.Handler) {
	r.Get("/rates", h.Current)
	r.Get("/rates/history", h.History)
}
