package location

import (
	"fmt"

	"courier-service/apperr"
	"courier-service/logger"
	locationModel "courier-service/models/location"
	"courier-service/types"
	"courier-service/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LocationController serves the location registry
type LocationController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewLocationController creates a new location controller
func NewLocationController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *LocationController {
	return &LocationController{
		DB:     db,
		Logger: asyncLogger,
	}
}

// Index lists all registered locations
func (lc *LocationController) Index(c *fiber.Ctx) error {
	var locations []locationModel.Location
	if err := lc.DB.Order("name ASC").Find(&locations).Error; err != nil {
		return utils.ErrorResponse(c, err, "Failed to list locations")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Locations retrieved successfully",
		Data:    locations,
	})
}

// Store registers a new location (admin only; role gate in the route
// middleware). Locations have no update path once created.
func (lc *LocationController) Store(c *fiber.Ctx) error {
	var loc locationModel.Location
	if err := c.BodyParser(&loc); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if loc.Name == "" || loc.Street == "" || loc.City == "" || loc.PostalCode == "" || loc.Country == "" {
		return utils.ErrorResponse(c,
			fmt.Errorf("%w: name, street, city, postal_code and country are required", apperr.Invalid),
			"Invalid location")
	}

	loc.ID = 0
	if err := lc.DB.Create(&loc).Error; err != nil {
		return utils.ErrorResponse(c, err, "Failed to create location")
	}

	logger.Success(fmt.Sprintf("Location created successfully with ID: %d", loc.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Location created successfully",
		Data:    loc,
	})
}
