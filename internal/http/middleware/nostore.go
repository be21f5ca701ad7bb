package middleware

import "github.com/gofiber/fiber/v2"

// NoStore marks responses as uncacheable. API payloads carry per-user data
// such as balances and job status that must not be served stale.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
