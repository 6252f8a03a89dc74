package server

import (
	"courier-service/types"

	"github.com/gofiber/fiber/v2"
)

// Health reports service liveness
func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "courier-service is running",
	})
}
