package response

import (
	apperrors "storefront/internal/errors"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, "Insufficient permissions")
}

func ValidationError(c *fiber.Ctx, errs *validation.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  apperrors.ErrValidation.Message,
		"code":   apperrors.ErrValidation.Code,
		"fields": errs.Fields,
	})
}

// Domain writes a DomainError with the status its code maps to.
func Domain(c *fiber.Ctx, err *apperrors.DomainError) error {
	return c.Status(StatusFor(err)).JSON(fiber.Map{
		"error": err.Message,
		"code":  err.Code,
	})
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(err *apperrors.DomainError) int {
	switch err.Code {
	case apperrors.ErrTenantNotFound.Code, apperrors.ErrOrderNotFound.Code:
		return fiber.StatusNotFound
	case apperrors.ErrPlanExpired.Code:
		return fiber.StatusPaymentRequired
	case apperrors.ErrTenantRequired.Code, apperrors.ErrPaymentMethodUnavailable.Code, apperrors.ErrInvalidReturn.Code:
		return fiber.StatusBadRequest
	case apperrors.ErrInsufficientStock.Code:
		return fiber.StatusConflict
	case apperrors.ErrValidation.Code:
		return fiber.StatusUnprocessableEntity
	case apperrors.ErrPaymentProvider.Code:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
