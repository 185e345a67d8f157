package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lending-concierge-be/internal/service"
)

// mapServiceError translates service sentinels into HTTP status codes.
// Unknown errors pass through and the global handler turns them into 500s.
func mapServiceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefresh):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrAccountSuspended):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrInvalidResetToken),
		errors.Is(err, service.ErrCaseNotPublished):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBrokerNotFound),
		errors.Is(err, service.ErrCaseNotFound),
		errors.Is(err, service.ErrImageNotFound),
		errors.Is(err, service.ErrInquiryNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDailyLimitReached):
		return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
	default:
		return err
	}
}
