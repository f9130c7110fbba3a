package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// StreamAuth is OptionalUser for EventSource clients, which cannot set headers:
// the token may come from the `token` query parameter instead.
//
// Usage:
//
//	app.Get("/rewards/tickets/stream", middleware.StreamAuth(), handler)
func StreamAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ParseBearer(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = strings.TrimSpace(c.Query("token"))
		}
		if token == "" {
			return c.Next()
		}
		log.Printf("[SSEAuth] token (len=%d) on %s", len(token), c.Path())
		return attach(c, token)
	}
}
