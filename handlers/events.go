package handlers

import (
	"synthara-api/models"
	"synthara-api/services"

	"github.com/gofiber/fiber/v2"
)

type eventLogRequest struct {
	EventType models.EventType `json:"eventType"`
	Metadata  map[string]any   `json:"metadata"`
}

func SetupEventRoutes(app *fiber.App, events *services.EventLog) {
	app.Post("/events/log", func(c *fiber.Ctx) error {
		var req eventLogRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if !req.EventType.Valid() {
			return fail(c, fiber.StatusBadRequest, "Unknown eventType")
		}
		events.Append(req.EventType, req.Metadata)
		return c.JSON(fiber.Map{"ok": true})
	})
}
