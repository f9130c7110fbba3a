package handlers

import (
	"synthara-api/middleware"
	"synthara-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEntitlementRoutes(app *fiber.App, entitlements *services.EntitlementService) {
	app.Get("/entitlements/me", func(c *fiber.Ctx) error {
		result, err := entitlements.ForUser(c.UserContext(), middleware.StateUserID(c))
		if err != nil {
			return internalError(c, "ENTITLEMENTS", err)
		}
		return c.JSON(result)
	})
}
