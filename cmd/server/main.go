// Package main is the entry point of the storefront API server.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/handlers"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/repositories/cache"
	"storefront/internal/routes"
	"storefront/internal/services/checkout"
	"storefront/internal/services/mercadopago"
	"storefront/internal/services/paymentconfig"
	"storefront/internal/services/tenant"
	"storefront/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := repositories.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get database instance", zap.Error(err))
	}
	defer sqlDB.Close()

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cacheService := cache.NewCacheService(redisClient, cfg.TenantCacheTTL)
	defer cacheService.Close()
	if err := cacheService.HealthCheck(context.Background()); err != nil {
		logger.Warn("redis unavailable, tenant lookups will hit the database", zap.Error(err))
	}

	sealer, err := paymentconfig.NewSealer(cfg.TokenSealingKey)
	if err != nil {
		logger.Fatal("MP_TOKEN_KEY is invalid", zap.Error(err))
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.OrderEventTopic))
		logger.Info("publishing order events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.OrderEventTopic))
	}
	defer publisher.Close()

	// Repositories
	tenantRepo := repositories.NewCachedTenantRepository(repositories.NewTenantRepository(db), cacheService, logger)
	siteConfigRepo := repositories.NewSiteConfigRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentConfigRepo := repositories.NewPaymentConfigRepository(db)

	// Services
	themes := tenant.NewThemeStore()
	resolver := tenant.NewResolver(tenantRepo, siteConfigRepo, themes, cfg.ReservedSubdomains, logger)
	paymentConfigService := paymentconfig.NewService(paymentConfigRepo, sealer, logger)
	mpClient := mercadopago.NewClient(cfg.MercadoPagoBaseURL, cfg.MercadoPagoTimeout, logger)
	preferenceBuilder := mercadopago.NewBuilder(paymentConfigService, mpClient, cfg.PublicBaseURL, cfg.Currency, logger)
	checkoutService := checkout.NewService(productRepo, orderRepo, paymentConfigService, preferenceBuilder, publisher, logger)

	app := fiber.New(fiber.Config{
		AppName:     "storefront",
		ProxyHeader: fiber.HeaderXForwardedFor,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${host}${path}\n",
	}))

	checkoutLimiter := limiter.New(limiter.Config{
		Max:        cfg.CheckoutRateLimit,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	})

	routes.SetupRoutes(app, routes.Dependencies{
		Auth:     middleware.NewAuthMiddleware(cfg.JWTSecret, logger),
		Resolver: resolver,
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": handlers.PingFunc(sqlDB.PingContext),
			"redis":    handlers.PingFunc(cacheService.HealthCheck),
		}),
		Tenant:          handlers.NewTenantHandler(themes),
		Checkout:        handlers.NewCheckoutHandler(checkoutService, logger),
		PaymentSettings: handlers.NewPaymentSettingsHandler(paymentConfigService, logger),
		CheckoutLimiter: checkoutLimiter,
		Logger:          logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()
	logger.Info("storefront API listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
