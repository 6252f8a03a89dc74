package shipment

import (
	"fmt"
	"io"
	"time"

	"courier-service/logger"
	labelParserService "courier-service/services/labelparser"
	"courier-service/types"

	"github.com/gofiber/fiber/v2"
)

// ParseLabel handles a waybill/label image upload and extracts shipment
// fields using Gemini Vision
func (sc *ShipmentController) ParseLabel(c *fiber.Ctx) error {
	startTime := time.Now()

	service := labelParserService.NewLabelParserService(sc.DB)
	requestID := service.GenerateRequestID()

	file, err := c.FormFile("image")
	if err != nil {
		logger.Error(fmt.Sprintf("No image file provided for request %s", requestID), err)

		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "No image file provided",
			Status:  fiber.StatusBadRequest,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	mimeType := file.Header.Get("Content-Type")
	if !isValidImageType(mimeType) {
		logger.Error(fmt.Sprintf("Invalid file type %s for request %s", mimeType, requestID),
			fmt.Errorf("invalid mime type: %s", mimeType))

		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid file type. Only JPEG, JPG, PNG, and WebP files are allowed",
			Status:  fiber.StatusBadRequest,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	// 10MB cap on uploaded label photos
	maxSize := int64(10 * 1024 * 1024)
	if file.Size > maxSize {
		logger.Error(fmt.Sprintf("File size %d exceeds max %d for request %s", file.Size, maxSize, requestID),
			fmt.Errorf("file size %d exceeds max %d", file.Size, maxSize))

		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "File size too large. Maximum size is 10MB",
			Status:  fiber.StatusBadRequest,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	if _, err := service.CreateInitialRequest(c, requestID, file.Filename, file.Size, mimeType); err != nil {
		logger.Error(fmt.Sprintf("Failed to create initial request %s", requestID), err)

		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to initialize request",
			Status:  fiber.StatusInternalServerError,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	src, err := file.Open()
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, "Failed to open uploaded file", processingTime)

		logger.Error(fmt.Sprintf("Failed to open uploaded file for request %s", requestID), err)

		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to process uploaded file",
			Status:  fiber.StatusInternalServerError,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, "Failed to read file content", processingTime)

		logger.Error(fmt.Sprintf("Failed to read file content for request %s", requestID), err)

		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to read file content",
			Status:  fiber.StatusInternalServerError,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	// Start async file saving
	service.SaveFileAsync(requestID, fileBytes, file.Filename, mimeType)

	result, err := service.ParseWithGemini(fileBytes, mimeType)
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, fmt.Sprintf("Gemini parsing failed: %s", err.Error()), processingTime)

		logger.Error(fmt.Sprintf("Failed to parse label with Gemini for request %s", requestID), err)

		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to parse shipping label",
			Status:  fiber.StatusInternalServerError,
			Data: map[string]interface{}{
				"error":      err.Error(),
				"request_id": requestID,
			},
		})
	}

	processingTime := time.Since(startTime).Milliseconds()
	result.ProcessingTimeMs = processingTime
	result.RequestID = requestID

	service.SaveSuccessResultAsync(requestID, result)

	logger.Success(fmt.Sprintf("Shipping label parsed successfully in %dms, Request ID: %s",
		processingTime, requestID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipping label parsed successfully",
		Data:    result,
	})
}

// isValidImageType checks the uploaded content type
func isValidImageType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/jpg", "image/png", "image/webp":
		return true
	default:
		return false
	}
}
