package middleware

import (
	"context"

	apperrors "storefront/internal/errors"
	"storefront/internal/models"
	"storefront/internal/services/tenant"
	"storefront/internal/utils"
	"storefront/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const tenantLocalsKey = "tenant"

// TenantParam is the query parameter that selects a tenant explicitly.
const TenantParam = "tenant"

type TenantResolver interface {
	Resolve(ctx context.Context, req tenant.Request, profile *models.Profile) (*tenant.Context, error)
}

// ResolveTenant resolves the tenant of every request and stores it for handlers.
// Run it after the auth middleware so the profile fallback is available.
func ResolveTenant(resolver TenantResolver, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := tenant.Request{
			TenantParam: c.Query(TenantParam),
			Host:        c.Hostname(),
		}
		tc, err := resolver.Resolve(c.UserContext(), req, utils.GetProfile(c))
		if err != nil {
			if de, ok := apperrors.As(err); ok {
				return response.Domain(c, de)
			}
			logger.Error("tenant resolution failed", zap.String("host", req.Host), zap.Error(err))
			return response.ServerError(c, "failed to resolve tenant")
		}
		SetTenantContext(c, tc)
		return c.Next()
	}
}

func SetTenantContext(c *fiber.Ctx, tc *tenant.Context) {
	c.Locals(tenantLocalsKey, tc)
}

// GetTenantContext returns the context stored by ResolveTenant, never nil.
func GetTenantContext(c *fiber.Ctx) *tenant.Context {
	if tc, ok := c.Locals(tenantLocalsKey).(*tenant.Context); ok && tc != nil {
		return tc
	}
	return &tenant.Context{Config: models.JSON{}}
}

// RequireActivePlan stops requests without a tenant or with an expired plan.
func RequireActivePlan(c *fiber.Ctx) error {
	tc := GetTenantContext(c)
	if !tc.Resolved() {
		return response.Domain(c, apperrors.ErrTenantRequired)
	}
	if de, ok := apperrors.As(tc.AccessError); ok {
		return response.Domain(c, de)
	}
	return c.Next()
}

// RequireTenantMember only lets through users whose token belongs to the resolved tenant.
func RequireTenantMember(c *fiber.Ctx) error {
	profile := utils.GetProfile(c)
	if profile == nil {
		return response.Unauthorized(c)
	}
	tc := GetTenantContext(c)
	if !tc.Resolved() || profile.TenantID == nil || *profile.TenantID != tc.Tenant.ID {
		return response.Error(c, fiber.StatusForbidden, "token does not belong to this store")
	}
	return c.Next()
}
