package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ihrp/tally/internal/services"
)

func (handler *Handler) CreateMasterPlan(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	var input services.MasterPlanInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if _, err := handler.plans.Create(c.Context(), identity, input); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "master plan created"})
}

func (handler *Handler) ListMasterPlans(c *fiber.Ctx) error {
	plans, err := handler.plans.ListAll(c.Context())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(plans)
}
