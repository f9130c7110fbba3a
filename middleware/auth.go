package middleware

import (
	"log"
	"strings"

	"synthara-api/config"
	"synthara-api/models"

	"github.com/gofiber/fiber/v2"
)

// DevToken is the only bearer token the demo accepts.
const DevToken = "dev-token"

const userLocalsKey = "user"

// ParseBearer strips the "Bearer" marker and surrounding space.
// It returns "" when no token is present.
func ParseBearer(header string) string {
	return strings.TrimSpace(strings.ReplaceAll(header, "Bearer", ""))
}

// UserFromToken resolves a token to its account.
func UserFromToken(token string) (*models.User, bool) {
	if token != DevToken {
		return nil, false
	}
	return models.DemoUser(), true
}

// CurrentUser returns the user attached by OptionalUser / RequireUser, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(userLocalsKey).(*models.User)
	return u
}

// StateUserID is the key for per-user economy and reward state. The demo keeps
// one shared state regardless of who is signed in.
func StateUserID(c *fiber.Ctx) string {
	return models.DemoUserID
}

func deny(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

func attach(c *fiber.Ctx, token string) error {
	user, ok := UserFromToken(token)
	if !ok {
		log.Printf("❌ [AUTH] Invalid token for %s %s", c.Method(), c.Path())
		return deny(c, fiber.StatusUnauthorized, "Invalid token")
	}
	c.Locals(userLocalsKey, user)
	return c.Next()
}

// OptionalUser attaches the user when a token is sent. A token that is sent
// but invalid is still rejected.
func OptionalUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ParseBearer(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Next()
		}
		return attach(c, token)
	}
}

// RequireUser rejects requests without a valid bearer token.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ParseBearer(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			log.Printf("🚫 [AUTH] Missing token for %s %s", c.Method(), c.Path())
			return deny(c, fiber.StatusUnauthorized, "Missing token")
		}
		return attach(c, token)
	}
}

// RequireWriteAccess lets anonymous writes through in dev only.
// Must run after OptionalUser.
func RequireWriteAccess(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.IsCanonical() && CurrentUser(c) == nil {
			log.Printf("🚫 [AUTH] Anonymous write refused in %s: %s %s", cfg.AppEnv(), c.Method(), c.Path())
			return deny(c, fiber.StatusUnauthorized, "Authentication required")
		}
		return c.Next()
	}
}
