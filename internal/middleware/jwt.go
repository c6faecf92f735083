package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/coinfolio/coinfolio/internal/auth"
	"github.com/coinfolio/coinfolio/internal/config"
	"github.com/coinfolio/coinfolio/internal/identity"
)

const bearerPrefix = "bearer "

// JWTAuth guards the wallet routes. It verifies the access token, rejects
// tokens whose version was invalidated by logout, and exposes the
// authenticated user to downstream handlers via the user_id, user_email and
// token_version locals.
func JWTAuth(cfg config.Config, repo identity.Repository) fiber.Handler {
	secret := []byte(cfg.JWTSecret)
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if len(authz) <= len(bearerPrefix) || !strings.EqualFold(authz[:len(bearerPrefix)], bearerPrefix) {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := auth.ParseAndVerifyHS256(strings.TrimSpace(authz[len(bearerPrefix):]), secret)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		user, err := repo.FindByID(c.UserContext(), claims.Subject())
		if err != nil || user.TokenVersion != claims.Version() {
			return fiber.NewError(http.StatusUnauthorized, "token invalidated")
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_email", user.Email)
		c.Locals("token_version", user.TokenVersion)
		return c.Next()
	}
}
