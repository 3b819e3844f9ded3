package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ihrp/tally/internal/services"
)

func (handler *Handler) CreateActual(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	var input services.ActualEntryInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if _, err := handler.actuals.Create(c.Context(), identity, input); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "actual entry recorded"})
}

func (handler *Handler) ListActuals(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	entries, err := handler.actuals.ListMine(c.Context(), identity)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) CapacityUtilization(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	report, err := handler.actuals.CapacityUtilization(c.Context(), identity, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(report)
}

func (handler *Handler) WeeklyStats(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	stats, err := handler.actuals.WeeklyStats(c.Context(), identity)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(stats)
}
