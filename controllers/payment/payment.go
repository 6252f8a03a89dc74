package payment

import (
	"fmt"
	"strconv"

	"courier-service/apperr"
	"courier-service/logger"
	paymentService "courier-service/services/payment"
	"courier-service/types"
	paymentTypes "courier-service/types/payment"
	"courier-service/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PaymentController handles payment attempts and gateway callbacks
type PaymentController struct {
	DB      *gorm.DB
	Service *paymentService.Service
	Logger  *logger.AsyncLogger
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *gorm.DB, service *paymentService.Service, asyncLogger *logger.AsyncLogger) *PaymentController {
	return &PaymentController{
		DB:      db,
		Service: service,
		Logger:  asyncLogger,
	}
}

// Start begins a payment attempt for a shipment owned by the caller
func (pc *PaymentController) Start(c *fiber.Ctx) error {
	var req paymentTypes.StartPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	payer, err := utils.CurrentUser(c, pc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	raw := c.Params("id")
	shipmentID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || shipmentID == 0 {
		return utils.ErrorResponse(c, fmt.Errorf("%w: shipment id %q is not valid", apperr.Invalid, raw), "Invalid shipment id")
	}

	record, err := pc.Service.Start(uint(shipmentID), payer, req.Currency)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to start payment")
	}

	logger.Success(fmt.Sprintf("Payment attempt %d started for shipment %d", record.ID, record.ShipmentID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Payment started",
		Data:    record,
	})
}

// Webhook applies the gateway's terminal outcome callback. Replayed
// callbacks are acknowledged without changing anything.
func (pc *PaymentController) Webhook(c *fiber.Ctx) error {
	var payload paymentTypes.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		logger.Error("Failed to parse webhook payload", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid webhook payload",
		})
	}

	if err := payload.Validate(); err != nil {
		return utils.ErrorResponse(c, err, "Invalid webhook payload")
	}

	var err error
	if payload.Event == paymentTypes.EventSucceeded {
		_, err = pc.Service.HandleSuccess(payload.IntentID, payload.ChargeID, payload.Metadata)
	} else {
		_, err = pc.Service.HandleFailure(payload.IntentID, payload.FailureReason, payload.Metadata)
	}
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to process webhook")
	}

	logger.Success(fmt.Sprintf("Webhook %s processed for intent %s", payload.Event, payload.IntentID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Webhook processed",
	})
}
