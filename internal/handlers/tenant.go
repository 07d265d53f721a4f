package handlers

import (
	apperrors "storefront/internal/errors"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ThemeSource returns the CSS variables applied for a tenant.
type ThemeSource interface {
	Variables(tenantID uuid.UUID) (map[string]string, bool)
}

type TenantHandler struct {
	themes ThemeSource
}

func NewTenantHandler(themes ThemeSource) *TenantHandler {
	return &TenantHandler{themes: themes}
}

type tenantView struct {
	ID         uuid.UUID   `json:"id"`
	Subdomain  string      `json:"subdomain"`
	Name       string      `json:"name"`
	PlanStatus string      `json:"plan_status"`
	Config     models.JSON `json:"config"`
}

// GetContext reports the resolved tenant, including an expired plan, so the
// client can render the right notice.
func (h *TenantHandler) GetContext(c *fiber.Ctx) error {
	tc := middleware.GetTenantContext(c)

	data := fiber.Map{
		"tenant":       nil,
		"access_error": nil,
	}
	if tc.Resolved() {
		data["tenant"] = tenantView{
			ID:         tc.Tenant.ID,
			Subdomain:  tc.Tenant.Subdomain,
			Name:       tc.Tenant.Name,
			PlanStatus: tc.Tenant.PlanStatus,
			Config:     tc.Config,
		}
	}
	if de, ok := apperrors.As(tc.AccessError); ok {
		data["access_error"] = de
	}
	return response.Success(c, "tenant resolved", data)
}

func (h *TenantHandler) GetTheme(c *fiber.Ctx) error {
	tc := middleware.GetTenantContext(c)
	vars, ok := h.themes.Variables(tc.Tenant.ID)
	if !ok {
		vars = map[string]string{}
	}
	return response.Success(c, "theme", fiber.Map{"variables": vars})
}
