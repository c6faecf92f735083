package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Audit writes one structured log line per request with the fields wallet
// operators filter on: method, path, status, latency, request id and, once
// JWTAuth has run, the acting user.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("latency", time.Since(start)),
		}
		if id, _ := c.Locals(requestIDLocal).(string); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}
		if userID, _ := c.Locals("user_id").(string); userID != "" {
			attrs = append(attrs, slog.String("user_id", userID))
		}

		if err != nil {
			logger.Error("request failed", append(attrs, slog.Any("error", err))...)
			return err
		}
		logger.Info("request handled", attrs...)
		return nil
	}
}
