package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ihrp/tally/internal/services"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.users.ListAll()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(users)
}

// UpdateUser lets members edit their own record and admins edit anyone's.
// Only admins may change roles.
func (handler *Handler) UpdateUser(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}
	userID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}
	if !services.CanAccess(identity, userID) {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}

	var input userUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if input.Role != nil && !identity.IsAdmin() {
		return apiError(c, fiber.StatusForbidden, "only admins may change roles")
	}

	user, err := handler.users.Update(userID, services.UserUpdateInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		DateOfBirth: input.DateOfBirth,
		Department:  input.Department,
		Role:        input.Role,
		Password:    input.Password,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(user)
}

func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}
	if err := handler.users.Delete(userID); err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.logger.Infow("user deleted", "userId", userID)
	return c.JSON(fiber.Map{"message": "user deleted"})
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}
