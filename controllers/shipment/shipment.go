package shipment

import (
	"fmt"
	"strconv"

	"courier-service/apperr"
	"courier-service/logger"
	shipmentService "courier-service/services/shipment"
	"courier-service/types"
	shipmentTypes "courier-service/types/shipment"
	"courier-service/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ShipmentController handles shipment-related HTTP requests
type ShipmentController struct {
	DB      *gorm.DB
	Service *shipmentService.Service
	Logger  *logger.AsyncLogger
}

// NewShipmentController creates a new shipment controller
func NewShipmentController(db *gorm.DB, service *shipmentService.Service, asyncLogger *logger.AsyncLogger) *ShipmentController {
	return &ShipmentController{
		DB:      db,
		Service: service,
		Logger:  asyncLogger,
	}
}

// Store creates a new shipment owned by the authenticated sender
func (sc *ShipmentController) Store(c *fiber.Ctx) error {
	var req shipmentTypes.ShipmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	sender, err := utils.CurrentUser(c, sc.DB)
	if err != nil {
		logger.Error("Failed to resolve acting user", err)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	sh, err := sc.Service.Create(sender, &req)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to create shipment")
	}

	logger.Success(fmt.Sprintf("Shipment created successfully with tracking id %s", sh.TrackingID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Shipment created successfully",
		Data:    sh,
	})
}

// Index lists shipments visible to the caller
func (sc *ShipmentController) Index(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c, sc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	shipments, err := sc.Service.List(actor, c.Query("status"), limit, offset)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to list shipments")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipments retrieved successfully",
		Data:    shipments,
	})
}

// Show returns one shipment with its status history
func (sc *ShipmentController) Show(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c, sc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err, "Invalid shipment id")
	}

	sh, err := sc.Service.Get(id, actor)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to load shipment")
	}

	events, err := sc.Service.History(sh.ID)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to load shipment history")
	}
	sh.StatusEvents = events

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment retrieved successfully",
		Data:    sh,
	})
}

// UpdateStatus applies a status change to one shipment (staff/admin only;
// the role gate sits in the route middleware)
func (sc *ShipmentController) UpdateStatus(c *fiber.Ctx) error {
	var req shipmentTypes.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	actor, err := utils.CurrentUser(c, sc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err, "Invalid shipment id")
	}

	sh, err := sc.Service.UpdateStatus(id, &req, actor)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to update shipment status")
	}

	logger.Success(fmt.Sprintf("Shipment %d status updated to %s", sh.ID, sh.Status))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment status updated successfully",
		Data:    sh,
	})
}

// BulkUpdateStatus applies one status payload to many shipments and reports
// the aggregate count
func (sc *ShipmentController) BulkUpdateStatus(c *fiber.Ctx) error {
	var req shipmentTypes.BulkStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	actor, err := utils.CurrentUser(c, sc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	result, err := sc.Service.BulkUpdateStatus(&req, actor)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to bulk update shipment status")
	}

	logger.Success(fmt.Sprintf("Bulk status update applied to %d shipment(s)", result.Updated))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("%d shipment(s) updated", result.Updated),
		Data:    result,
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: shipment id %q is not valid", apperr.Invalid, raw)
	}
	return uint(id), nil
}
