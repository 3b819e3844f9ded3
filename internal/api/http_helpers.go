package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ihrp/tally/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func currentIdentity(c *fiber.Ctx) (services.Identity, bool) {
	identity, ok := c.Locals(contextIdentity).(services.Identity)
	return identity, ok
}

// respondServiceError maps service-level sentinel errors onto the HTTP error
// taxonomy. Anything unrecognized is a 500 with a fixed message; the detail
// goes to the log, never to the client.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCapacityEntryNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotEntryOwner):
		return apiError(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "password must be at least 10 characters with lowercase, uppercase, digit and special character")
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidDateOfBirth),
		errors.Is(err, services.ErrInvalidDepartment),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrAuthCredentialsInvalid),
		errors.Is(err, services.ErrCapacityFieldsMissing),
		errors.Is(err, services.ErrActualFieldsMissing),
		errors.Is(err, services.ErrPlanFieldsMissing),
		errors.Is(err, services.ErrMissingIdentity),
		errors.Is(err, services.ErrInvalidHours),
		errors.Is(err, services.ErrInvalidClockTime),
		errors.Is(err, services.ErrInvertedTimeRange),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrResetTokenInvalid):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	default:
		handler.logger.Errorw("request failed", "path", c.Path(), "err", err)
		return apiError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
