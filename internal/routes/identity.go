package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/coinfolio/coinfolio/internal/auth"
	"github.com/coinfolio/coinfolio/internal/identity"
	"github.com/coinfolio/coinfolio/internal/wallet"
)

// RegisterIdentityRoutes wires the signup endpoint. Registration seeds the
// demo wallet and logs the user straight in, mirroring the dashboard flow.
func RegisterIdentityRoutes(r fiber.Router, ids *identity.Service, tokens *auth.Service, wallets wallet.Store, logger *slog.Logger) {
	r.Post("/identity/register", func(c *fiber.Ctx) error {
		var req struct {
			Email           string `json:"email"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirm_password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		user, err := ids.Register(c.UserContext(), identity.RegisterInput{
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, identity.ErrExists) {
				status = http.StatusConflict
			}
			return fiber.NewError(status, err.Error())
		}

		// first access seeds the demo balances and transactions
		wallets.GetOrCreate(c.UserContext(), user.ID)

		pair, err := tokens.Login(user)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}

		if logger != nil {
			logger.Info("identity.register completed",
				slog.String("user_id", user.ID),
				slog.String("email", user.Email),
				slog.Int("status", http.StatusCreated),
			)
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"user_id":       user.ID,
			"email":         user.Email,
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
			"expires_in":    pair.ExpiresIn,
		})
	})
}
