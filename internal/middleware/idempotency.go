package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotency-Replayed"

	// Keys are scoped per method and path so the same client key on
	// /wallet/send and /wallet/receive reserves two independent slots.
	idempotencyKeyspace = "coinfolio:idem:v1:"
	pendingMarker       = "pending"

	cacheOpTimeout = 2 * time.Second
)

// walletOutcome is the slice of a response worth replaying: enough to hand a
// retrying client the original send confirmation without re-debiting.
type walletOutcome struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Idempotency makes wallet mutations replay-safe. Every unsafe request must
// carry an Idempotency-Key header; a retry with the same key gets the stored
// first outcome back instead of debiting the wallet twice. Safe methods pass
// through untouched. Redis failures reject the request rather than risking a
// double spend.
func Idempotency(cache *redis.Client, ttl time.Duration, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return c.Next()
		}

		clientKey := c.Get(idempotencyKeyHeader)
		if clientKey == "" {
			return fiber.NewError(fiber.StatusBadRequest, "missing Idempotency-Key header")
		}
		slot := idempotencyKeyspace + c.Method() + ":" + c.Path() + ":" + clientKey

		ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
		defer cancel()

		prior, err := cache.Get(ctx, slot).Result()
		switch {
		case err == nil:
			if prior == pendingMarker {
				return fiber.NewError(fiber.StatusConflict, "operation with this key still in flight")
			}
			var outcome walletOutcome
			if err := json.Unmarshal([]byte(prior), &outcome); err != nil {
				logger.Warn("stored wallet outcome unreadable", slog.String("slot", slot), slog.Any("error", err))
				return fiber.NewError(fiber.StatusConflict, "operation with this key already performed")
			}
			c.Set(fiber.HeaderContentType, outcome.ContentType)
			c.Set(replayedHeader, "true")
			return c.Status(outcome.Status).Send(outcome.Body)
		case err != redis.Nil:
			logger.Error("idempotency lookup failed", slog.String("slot", slot), slog.Any("error", err))
			return fiber.NewError(fiber.StatusServiceUnavailable, "idempotency store unavailable")
		}

		reserved, err := cache.SetNX(ctx, slot, pendingMarker, ttl).Result()
		if err != nil {
			logger.Error("idempotency reservation failed", slog.String("slot", slot), slog.Any("error", err))
			return fiber.NewError(fiber.StatusServiceUnavailable, "idempotency store unavailable")
		}
		if !reserved {
			// lost the race against a concurrent retry
			return fiber.NewError(fiber.StatusConflict, "operation with this key still in flight")
		}

		if err := c.Next(); err != nil {
			releaseCtx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
			defer cancel()
			cache.Del(releaseCtx, slot) // let the client retry a failed send
			return err
		}

		outcome := walletOutcome{
			Status:      c.Response().StatusCode(),
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		}
		payload, err := json.Marshal(outcome)
		if err != nil {
			logger.Error("encode wallet outcome", slog.String("slot", slot), slog.Any("error", err))
			payload = nil
		}

		persistCtx, persistCancel := context.WithTimeout(context.Background(), cacheOpTimeout)
		defer persistCancel()
		if payload == nil {
			cache.Del(persistCtx, slot)
			return nil
		}
		if err := cache.Set(persistCtx, slot, payload, ttl).Err(); err != nil {
			logger.Error("persist wallet outcome", slog.String("slot", slot), slog.Any("error", err))
			cache.Del(persistCtx, slot)
		}
		return nil
	}
}
