package handlers

import (
	"errors"

	apperrors "storefront/internal/errors"
	"storefront/internal/utils/response"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// handleError writes err with the status its kind maps to. Unknown errors are
// logged and reported as a generic server error.
func handleError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	var verrs *validation.Errors
	if errors.As(err, &verrs) {
		return response.ValidationError(c, verrs)
	}
	if de, ok := apperrors.As(err); ok {
		if response.StatusFor(de) >= fiber.StatusInternalServerError {
			logger.Error("request failed", zap.String("path", c.Path()), zap.String("code", de.Code), zap.Error(err))
		}
		return response.Domain(c, de)
	}
	logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return response.ServerError(c, "internal server error")
}
