package handlers

import (
	"context"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services/paymentconfig"
	"storefront/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentSettingsService interface {
	GetConfig(ctx context.Context, tenantID uuid.UUID) (*paymentconfig.ConfigView, error)
	SaveConfig(ctx context.Context, tenantID uuid.UUID, patch paymentconfig.ConfigPatch) (*paymentconfig.ConfigView, error)
	GetPaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]models.PaymentMethodConfig, error)
	UpdatePaymentMethods(ctx context.Context, tenantID uuid.UUID, methods []models.PaymentMethodConfig) ([]models.PaymentMethodConfig, error)
}

type PaymentSettingsHandler struct {
	settings PaymentSettingsService
	logger   *zap.Logger
}

func NewPaymentSettingsHandler(settings PaymentSettingsService, logger *zap.Logger) *PaymentSettingsHandler {
	return &PaymentSettingsHandler{
		settings: settings,
		logger:   logger,
	}
}

func (h *PaymentSettingsHandler) GetMercadoPago(c *fiber.Ctx) error {
	tc := middleware.GetTenantContext(c)
	view, err := h.settings.GetConfig(c.UserContext(), tc.Tenant.ID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return response.Success(c, "mercadopago config", view)
}

// access_token is a pointer so an omitted field can be told apart from a sent one.
type saveMercadoPagoRequest struct {
	AccessToken *string `json:"access_token"`
	PublicKey   string  `json:"public_key"`
	Sandbox     bool    `json:"sandbox"`
	Enabled     bool    `json:"enabled"`
}

func (h *PaymentSettingsHandler) SaveMercadoPago(c *fiber.Ctx) error {
	var input saveMercadoPagoRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	patch := paymentconfig.ConfigPatch{
		PublicKey:   input.PublicKey,
		Sandbox:     input.Sandbox,
		Enabled:     input.Enabled,
		AccessToken: paymentconfig.KeepToken(),
	}
	// the settings form sends an empty field when the user leaves the token untouched
	if input.AccessToken != nil && strings.TrimSpace(*input.AccessToken) != "" {
		patch.AccessToken = paymentconfig.ReplaceToken(*input.AccessToken)
	}

	tc := middleware.GetTenantContext(c)
	view, err := h.settings.SaveConfig(c.UserContext(), tc.Tenant.ID, patch)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return response.Success(c, "mercadopago config saved", view)
}

func (h *PaymentSettingsHandler) GetMethods(c *fiber.Ctx) error {
	tc := middleware.GetTenantContext(c)
	methods, err := h.settings.GetPaymentMethods(c.UserContext(), tc.Tenant.ID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return response.Success(c, "payment methods", methods)
}

func (h *PaymentSettingsHandler) UpdateMethods(c *fiber.Ctx) error {
	var input struct {
		Methods []models.PaymentMethodConfig `json:"methods"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	tc := middleware.GetTenantContext(c)
	methods, err := h.settings.UpdatePaymentMethods(c.UserContext(), tc.Tenant.ID, input.Methods)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return response.Success(c, "payment methods updated", methods)
}
