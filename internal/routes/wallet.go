package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coinfolio/coinfolio/internal/wallet"
)

// RegisterWalletRoutes wires wallet endpoints for the authenticated user.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallet", h.Dashboard)
	r.Post("/wallet/send", h.Send)
	r.Post("/wallet/receive", h.Receive)
}
