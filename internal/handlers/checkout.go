package handlers

import (
	"context"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/services/checkout"
	"storefront/internal/services/tenant"
	"storefront/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CheckoutService interface {
	Checkout(ctx context.Context, tc *tenant.Context, cart checkout.Cart, methodType string) (checkout.Outcome, error)
	Return(ctx context.Context, tc *tenant.Context, params checkout.ReturnParams) (*checkout.ReturnView, error)
}

type CheckoutHandler struct {
	checkoutService CheckoutService
	logger          *zap.Logger
}

func NewCheckoutHandler(checkoutService CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

type checkoutRequest struct {
	Items         checkout.Cart `json:"items"`
	PaymentMethod string        `json:"payment_method"`
}

func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var input checkoutRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	outcome, err := h.checkoutService.Checkout(
		c.UserContext(),
		middleware.GetTenantContext(c),
		input.Items,
		strings.TrimSpace(input.PaymentMethod),
	)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(outcomeBody(outcome))
}

func outcomeBody(outcome checkout.Outcome) fiber.Map {
	switch o := outcome.(type) {
	case checkout.Redirect:
		return fiber.Map{
			"type":     "redirect",
			"url":      o.URL,
			"order_id": o.OrderID,
		}
	case checkout.MessagingHandoff:
		return fiber.Map{
			"type":       "messaging",
			"url":        o.URL,
			"order_id":   o.OrderID,
			"summary":    o.Summary,
			"clear_cart": o.ClearCart,
		}
	default:
		return fiber.Map{"order_id": outcome.Order()}
	}
}

// Return serves the landing routes the payment provider sends the customer back to.
func (h *CheckoutHandler) Return(c *fiber.Ctx) error {
	view, err := h.checkoutService.Return(c.UserContext(), middleware.GetTenantContext(c), checkout.ReturnParams{
		Result:    c.Params("result"),
		OrderID:   c.Query("order_id", c.Query("external_reference")),
		PaymentID: c.Query("payment_id"),
		Status:    c.Query("status"),
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return response.Success(c, "payment "+view.Result, view)
}
