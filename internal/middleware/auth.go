// Package middleware provides the fiber middleware of the storefront API:
// bearer authentication, role checks and per-request tenant resolution.
package middleware

import (
	"strings"

	"storefront/internal/models"
	"storefront/internal/utils"
	"storefront/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware validates bearer tokens and stores the claims in c.Locals("claims").
type AuthMiddleware struct {
	secret string
	logger *zap.Logger
}

func NewAuthMiddleware(secret string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		secret: secret,
		logger: logger,
	}
}

// Optional lets anonymous requests through. A token that is present but
// invalid is still rejected.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if c.Get(fiber.HeaderAuthorization) == "" {
		return c.Next()
	}
	return m.Handler(c)
}

// Handler requires a valid bearer token.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	claims, err := utils.ParseToken(m.secret, strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		m.logger.Debug("token validation failed", zap.Error(err))
		return response.Error(c, fiber.StatusUnauthorized, "invalid token")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	if claims.Role != models.RoleAdmin {
		return response.Forbidden(c)
	}
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return response.Unauthorized(c)
		}
		if claims.Role == models.RoleAdmin || claims.HasPermission(permission) {
			return c.Next()
		}
		return response.Forbidden(c)
	}
}
