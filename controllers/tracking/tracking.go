package tracking

import (
	"courier-service/logger"
	shipmentService "courier-service/services/shipment"
	"courier-service/types"
	trackingTypes "courier-service/types/tracking"
	"courier-service/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TrackingController handles public, unauthenticated tracking lookups
type TrackingController struct {
	DB      *gorm.DB
	Service *shipmentService.Service
}

// NewTrackingController creates a new tracking controller
func NewTrackingController(db *gorm.DB, service *shipmentService.Service) *TrackingController {
	return &TrackingController{
		DB:      db,
		Service: service,
	}
}

// Track looks a shipment up by tracking id and returns it with the full
// status history, newest first
func (tc *TrackingController) Track(c *fiber.Ctx) error {
	var req trackingTypes.TrackRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return utils.ErrorResponse(c, err, "Invalid tracking request")
	}

	result, err := tc.Service.Track(req.TrackingID)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to track shipment")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment found",
		Data:    result,
	})
}
