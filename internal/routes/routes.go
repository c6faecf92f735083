package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/coinfolio/coinfolio/internal/auth"
	"github.com/coinfolio/coinfolio/internal/config"
	"github.com/coinfolio/coinfolio/internal/identity"
	"github.com/coinfolio/coinfolio/internal/middleware"
	"github.com/coinfolio/coinfolio/internal/notification"
	"github.com/coinfolio/coinfolio/internal/rates"
	"github.com/coinfolio/coinfolio/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes. Rates and
// History default to a CoinGecko client built from the config; tests inject
// their own.
type Deps struct {
	Cfg     config.Config
	Cache   *redis.Client
	Logger  *slog.Logger
	Rates   rates.Provider
	History rates.HistorySource
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	if d.Rates == nil || d.History == nil {
		client := rates.NewClient(d.Cfg.RatesAPIURL, d.Cfg.RatesCurrency, d.Logger)
		if d.Rates == nil {
			d.Rates = client
		}
		if d.History == nil {
			d.History = client
		}
	}

	identityRepo := identity.NewMemoryRepository()
	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identityRepo)
	authHandler := auth.NewHandler(identitySvc, authSvc)

	walletStore := wallet.NewMemoryStore()
	notifier := notification.NewLoggerNotifier(d.Logger)
	walletSvc := wallet.NewService(walletStore, d.Rates, notifier)
	walletHandler := wallet.NewHandler(walletSvc)

	ratesHandler := rates.NewHandler(d.Rates, d.History)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("request_id").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterIdentityRoutes(api, identitySvc, authSvc, walletStore, d.Logger)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)
	RegisterRatesRoutes(api, ratesHandler)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg, identityRepo)
	protected := api.Group("", jwtmw)
	protected.Post("/auth/logout", authHandler.Logout)
	RegisterWalletRoutes(protected, walletHandler)

	return nil
}
