package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// successPayload is the success envelope.
type successPayload struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(successPayload{Success: true, Data: data})
}

func writeCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(successPayload{Success: true, Data: data})
}

// uuidParam returns the named path parameter and whether it is a UUID.
func uuidParam(c *fiber.Ctx, name string) (string, bool) {
	id := c.Params(name)
	_, err := uuid.Parse(id)
	return id, err == nil
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, CodeInvalidID, "invalid id format")
}

func missingQuery(c *fiber.Ctx, name string) error {
	return writeError(c, fiber.StatusBadRequest, CodeValidation, name+" is required")
}
