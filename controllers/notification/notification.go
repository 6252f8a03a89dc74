package notification

import (
	"fmt"
	"strconv"

	"courier-service/apperr"
	"courier-service/logger"
	notificationService "courier-service/services/notification"
	"courier-service/types"
	notificationTypes "courier-service/types/notification"
	"courier-service/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NotificationController handles per-user notification requests
type NotificationController struct {
	DB      *gorm.DB
	Service *notificationService.Service
	Logger  *logger.AsyncLogger
}

// NewNotificationController creates a new notification controller
func NewNotificationController(db *gorm.DB, service *notificationService.Service, asyncLogger *logger.AsyncLogger) *NotificationController {
	return &NotificationController{
		DB:      db,
		Service: service,
		Logger:  asyncLogger,
	}
}

// Index lists the caller's notifications, newest first
func (nc *NotificationController) Index(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c, nc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	var q notificationTypes.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid query parameters",
		})
	}

	notifications, err := nc.Service.List(actor.ID, q.UnreadOnly)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to list notifications")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notifications retrieved successfully",
		Data:    notifications,
	})
}

// MarkRead marks one notification as read; repeating the call is a no-op
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c, nc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err, "Invalid notification id")
	}

	n, err := nc.Service.MarkRead(id, actor.ID)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to mark notification as read")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notification marked as read",
		Data:    n,
	})
}

// MarkAllRead marks every unread notification owned by the caller
func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c, nc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	marked, err := nc.Service.MarkAllRead(actor.ID)
	if err != nil {
		return utils.ErrorResponse(c, err, "Failed to mark notifications as read")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: fmt.Sprintf("%d notification(s) marked as read", marked),
		Data:    notificationTypes.MarkAllReadResponse{Marked: marked},
	})
}

// Destroy deletes a notification its owner no longer wants
func (nc *NotificationController) Destroy(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c, nc.DB)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "User not found",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, err, "Invalid notification id")
	}

	if err := nc.Service.Delete(id, actor.ID); err != nil {
		return utils.ErrorResponse(c, err, "Failed to delete notification")
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Notification deleted",
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: notification id %q is not valid", apperr.Invalid, raw)
	}
	return uint(id), nil
}
