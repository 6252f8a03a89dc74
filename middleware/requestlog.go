package middleware

import (
	"courier-service/logger"
	"courier-service/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger pushes a sanitized request/response log entry through the
// async logger once the handler chain has produced its response. The entry
// is built after Next so the response body and status are final.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		asyncLogger.Log(utils.CreateSanitizedLogEntry(c))
		return err
	}
}
