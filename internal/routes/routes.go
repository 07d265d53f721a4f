// Package routes defines the API routing configuration.
package routes

import (
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Dependencies are the handlers and middleware the routes are wired to.
type Dependencies struct {
	Auth            *middleware.AuthMiddleware
	Resolver        middleware.TenantResolver
	Health          *handlers.HealthHandler
	Tenant          *handlers.TenantHandler
	Checkout        *handlers.CheckoutHandler
	PaymentSettings *handlers.PaymentSettingsHandler
	CheckoutLimiter fiber.Handler
	Logger          *zap.Logger
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", deps.Health.HealthCheck)

	// Every storefront route is tenant scoped; a token is optional.
	api := app.Group("/api", deps.Auth.Optional, middleware.ResolveTenant(deps.Resolver, deps.Logger))

	api.Get("/tenant", deps.Tenant.GetContext)
	api.Get("/tenant/theme", middleware.RequireActivePlan, deps.Tenant.GetTheme)

	setupCheckoutRoutes(api, deps)
	setupAdminRoutes(api, deps)
}

func setupCheckoutRoutes(router fiber.Router, deps Dependencies) {
	checkout := router.Group("/checkout", middleware.RequireActivePlan)

	if deps.CheckoutLimiter != nil {
		checkout.Post("/", deps.CheckoutLimiter, deps.Checkout.Checkout)
	} else {
		checkout.Post("/", deps.Checkout.Checkout)
	}
	checkout.Get("/return/:result", deps.Checkout.Return)
}

func setupAdminRoutes(router fiber.Router, deps Dependencies) {
	admin := router.Group("/admin",
		deps.Auth.Handler,
		middleware.AdminAuthMiddleware,
		middleware.RequireActivePlan,
		middleware.RequireTenantMember,
	)

	payments := admin.Group("/payments")
	payments.Get("/mercadopago", middleware.HasPermission(models.PermissionSettingsRead), deps.PaymentSettings.GetMercadoPago)
	payments.Put("/mercadopago", middleware.HasPermission(models.PermissionSettingsWrite), deps.PaymentSettings.SaveMercadoPago)
	payments.Get("/methods", middleware.HasPermission(models.PermissionSettingsRead), deps.PaymentSettings.GetMethods)
	payments.Put("/methods", middleware.HasPermission(models.PermissionSettingsWrite), deps.PaymentSettings.UpdateMethods)
}
