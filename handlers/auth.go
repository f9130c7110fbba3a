package handlers

import (
	"synthara-api/middleware"
	"synthara-api/services"

	"github.com/gofiber/fiber/v2"
)

type emailStartRequest struct {
	Email string `json:"email"`
}

type emailVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func SetupAuthRoutes(app *fiber.App, users *services.UserService) {
	// Email login is stubbed: every code verifies to the dev token.
	app.Post("/auth/email/start", func(c *fiber.Ctx) error {
		var req emailStartRequest
		if err := c.BodyParser(&req); err != nil || req.Email == "" {
			return fail(c, fiber.StatusBadRequest, "email is required")
		}
		return c.JSON(fiber.Map{"status": "sent"})
	})

	app.Post("/auth/email/verify", func(c *fiber.Ctx) error {
		var req emailVerifyRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
		return c.JSON(fiber.Map{"token": middleware.DevToken})
	})

	app.Get("/me", middleware.RequireUser(), func(c *fiber.Ctx) error {
		user, err := users.EnsureUser(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return internalError(c, "AUTH", err)
		}
		return c.JSON(user)
	})
}
