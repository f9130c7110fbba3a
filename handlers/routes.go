package handlers

import (
	"context"
	"log"
	"mime/multipart"

	"synthara-api/config"
	"synthara-api/middleware"
	"synthara-api/services"

	"github.com/gofiber/fiber/v2"
)

// AvatarUploader stores an uploaded image and returns its public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, fileHeader *multipart.FileHeader, key string) (string, error)
}

// Services bundles everything the HTTP layer talks to.
type Services struct {
	Config       *config.Config
	Users        *services.UserService
	Games        *services.GameEventService
	Models       *services.ModelService
	Economy      *services.EconomyService
	Tickets      *services.TicketService
	Entitlements *services.EntitlementService
	GamePreview  *services.GamePreviewService
	Events       *services.EventLog
	Avatars      AvatarUploader
}

func SetupRoutes(app *fiber.App, s *Services) {
	SetupAuthRoutes(app, s.Users)
	SetupGameRoutes(app, s.Config, s.Games)
	SetupModelRoutes(app, s.Config, s.Models, s.Avatars)
	SetupEconomyRoutes(app, s.Config, s.Economy)
	SetupRewardRoutes(app, s.Config, s.Tickets, s.Economy, s.Events)
	SetupEntitlementRoutes(app, s.Entitlements)
	SetupGamePreviewRoutes(app, s.GamePreview)
	SetupEventRoutes(app, s.Events)
}

// writeGuard is prepended to every mutating route.
func writeGuard(cfg *config.Config) []fiber.Handler {
	return []fiber.Handler{middleware.OptionalUser(), middleware.RequireWriteAccess(cfg)}
}

func guarded(guard []fiber.Handler, h fiber.Handler) []fiber.Handler {
	return append(append([]fiber.Handler{}, guard...), h)
}

func fail(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

func internalError(c *fiber.Ctx, tag string, err error) error {
	log.Printf("❌ [%s] %s %s: %v", tag, c.Method(), c.Path(), err)
	return fail(c, fiber.StatusInternalServerError, "Internal server error")
}
