package utils

import (
	"errors"

	"courier-service/apperr"
	"courier-service/logger"
	"courier-service/types"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse maps the service error taxonomy onto HTTP statuses:
// validation 422, not found 404, authorization 403, everything else 500.
func ErrorResponse(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, apperr.Invalid):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, apperr.NotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, apperr.Unauthorized):
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: err.Error(),
		})
	default:
		logger.Error(fallback, err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: fallback,
		})
	}
}
