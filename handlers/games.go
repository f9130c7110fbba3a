package handlers

import (
	"synthara-api/config"
	"synthara-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, cfg *config.Config, games *services.GameEventService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "env": cfg.AppEnv()})
	})

	listRooms := func(c *fiber.Ctx) error {
		events, err := games.ListOrSeed(c.UserContext())
		if err != nil {
			return internalError(c, "GAMES", err)
		}
		return c.JSON(events)
	}
	app.Get("/games", listRooms)
	app.Get("/games/rooms", listRooms)
}
