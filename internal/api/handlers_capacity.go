package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ihrp/tally/internal/services"
)

func (handler *Handler) CreateCapacityEntry(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	var input services.CapacityEntryInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.capacity.Create(identity, input)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) ListCapacityEntries(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}

	entries, err := handler.capacity.ListMine(identity)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entries)
}

func (handler *Handler) UpdateCapacityEntry(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}
	entryID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	var update services.CapacityEntryUpdate
	if err := c.BodyParser(&update); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.capacity.Update(identity, entryID, update)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteCapacityEntry(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}
	entryID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	if err := handler.capacity.Delete(identity, entryID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "capacity entry deleted"})
}
