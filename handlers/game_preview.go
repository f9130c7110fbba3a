package handlers

import (
	"errors"

	"synthara-api/middleware"
	"synthara-api/models"
	"synthara-api/services"

	"github.com/gofiber/fiber/v2"
)

type finishMatchRequest struct {
	MatchID string              `json:"matchId"`
	Outcome models.MatchOutcome `json:"outcome"`
	ModelID string              `json:"modelId"`
}

func SetupGamePreviewRoutes(app *fiber.App, game *services.GamePreviewService) {
	group := app.Group("/game/preview")

	group.Post("/start", func(c *fiber.Ctx) error {
		match := game.StartMatch(middleware.StateUserID(c))
		return c.JSON(fiber.Map{"matchId": match.ID, "status": match.Status})
	})

	group.Post("/finish", func(c *fiber.Ctx) error {
		var req finishMatchRequest
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
		result, err := game.FinishMatch(c.UserContext(), middleware.StateUserID(c), req.MatchID, req.Outcome, req.ModelID)
		switch {
		case errors.Is(err, services.ErrInvalidOutcome):
			return fail(c, fiber.StatusBadRequest, "outcome must be WIN, LOSS or DRAW")
		case errors.Is(err, services.ErrMatchNotFound):
			return fail(c, fiber.StatusNotFound, "Match not found")
		case err != nil:
			return internalError(c, "GAME", err)
		}
		return c.JSON(result)
	})
}
