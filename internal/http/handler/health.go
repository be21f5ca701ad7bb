package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"printshop/internal/repository"
)

// HealthCheck reports whether the store answers a ping within two seconds.
//
//	@Summary	Readiness check
//	@Tags		infra
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	errorPayload
//	@Router		/health [get]
func HealthCheck(pinger repository.Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if pinger == nil {
			return writeError(c, fiber.StatusServiceUnavailable, CodeUpstream, "dependency unavailable")
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pinger.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, CodeUpstream, "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 while the process is serving.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
