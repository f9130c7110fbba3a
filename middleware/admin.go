package middleware

import (
	"log"

	"synthara-api/config"

	"github.com/gofiber/fiber/v2"
)

const HeaderAdminKey = "X-Admin-Key"

// RequireDevAdmin guards seeding and granting endpoints: dev environment only,
// and only with the configured admin key.
func RequireDevAdmin(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.IsDev() {
			log.Printf("🚫 [ADMIN] %s blocked in %s", c.Path(), cfg.AppEnv())
			return deny(c, fiber.StatusForbidden, "Seeding is only available in dev")
		}
		if cfg.AdminAPIKey == "" {
			log.Printf("⚠️ [ADMIN] ADMIN_API_KEY is not set, refusing %s", c.Path())
			return deny(c, fiber.StatusServiceUnavailable, "Admin key not configured")
		}
		if c.Get(HeaderAdminKey) != cfg.AdminAPIKey {
			log.Printf("❌ [ADMIN] Invalid admin key for %s", c.Path())
			return deny(c, fiber.StatusUnauthorized, "Invalid admin key")
		}
		return c.Next()
	}
}
