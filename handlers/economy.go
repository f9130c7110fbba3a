package handlers

import (
	"errors"

	"synthara-api/config"
	"synthara-api/middleware"
	"synthara-api/models"
	"synthara-api/services"

	"github.com/gofiber/fiber/v2"
)

type purchasePerkRequest struct {
	PerkID string `json:"perkId"`
}

func SetupEconomyRoutes(app *fiber.App, cfg *config.Config, economy *services.EconomyService) {
	write := writeGuard(cfg)

	app.Get("/economy/me", func(c *fiber.Ctx) error {
		snapshot, err := economy.Snapshot(c.UserContext(), middleware.StateUserID(c))
		if err != nil {
			return internalError(c, "ECONOMY", err)
		}
		return c.JSON(snapshot)
	})

	app.Get("/economy/shop/perks", func(c *fiber.Ctx) error {
		return c.JSON(models.PerkCatalog)
	})

	app.Post("/economy/perks/purchase", guarded(write, func(c *fiber.Ctx) error {
		var req purchasePerkRequest
		if err := c.BodyParser(&req); err != nil || req.PerkID == "" {
			return fail(c, fiber.StatusBadRequest, "perkId is required")
		}
		role := ""
		if user := middleware.CurrentUser(c); user != nil {
			role = user.Role
		}
		result, err := economy.PurchasePerk(c.UserContext(), middleware.StateUserID(c), req.PerkID, role)
		if errors.Is(err, services.ErrPerkNotFound) {
			return fail(c, fiber.StatusNotFound, "Perk not found")
		}
		if err != nil {
			return internalError(c, "ECONOMY", err)
		}
		return c.JSON(result)
	})...)

	app.Post("/economy/nfts/mint", guarded(write, func(c *fiber.Ctx) error {
		var req services.MintRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fail(c, fiber.StatusBadRequest, "Invalid request body")
			}
		}
		if req.Tier != "" && !req.Tier.Valid() {
			return fail(c, fiber.StatusBadRequest, "Invalid tier")
		}
		result, err := economy.MintNFT(c.UserContext(), middleware.StateUserID(c), req)
		if err != nil {
			return internalError(c, "ECONOMY", err)
		}
		return c.JSON(result)
	})...)

	app.Get("/inventory/me", func(c *fiber.Ctx) error {
		inventory, err := economy.Inventory(c.UserContext(), middleware.StateUserID(c))
		if err != nil {
			return internalError(c, "ECONOMY", err)
		}
		return c.JSON(inventory)
	})
}
