package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ihrp/tally/internal/models"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", handler.Signup)
	auth.Post("/login", handler.Login)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/profile", handler.AuthRequired, handler.Profile)

	users := api.Group("/users", handler.AuthRequired)
	users.Get("", handler.RequireRoles(models.RoleAdmin), handler.ListUsers)
	users.Put("/:id", handler.UpdateUser)
	users.Delete("/:id", handler.RequireRoles(models.RoleAdmin), handler.DeleteUser)

	capacity := api.Group("/capacity", handler.AuthRequired)
	capacity.Post("", handler.CreateCapacityEntry)
	capacity.Get("", handler.ListCapacityEntries)
	capacity.Put("/:id", handler.UpdateCapacityEntry)
	capacity.Delete("/:id", handler.DeleteCapacityEntry)

	actuals := api.Group("/actuals", handler.AuthRequired)
	actuals.Post("", handler.CreateActual)
	actuals.Get("", handler.ListActuals)
	actuals.Get("/capacity", handler.CapacityUtilization)
	actuals.Get("/stats", handler.WeeklyStats)

	plans := api.Group("/plans", handler.AuthRequired)
	plans.Post("/master", handler.CreateMasterPlan)
	plans.Get("/master", handler.ListMasterPlans)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
