package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lending-concierge-be/internal/pkg/logger"
)

// NewErrorHandler builds the global fiber error handler. Fiber errors keep
// their status code; anything else becomes a 500 and is logged with the
// request path.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ErrorResponse(ctx, fiberErr.Code, fiberErr.Message)
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		return ErrorResponse(ctx, fiber.StatusInternalServerError, "internal server error")
	}
}
