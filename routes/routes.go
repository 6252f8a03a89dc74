package routes

import (
	"os"

	"courier-service/constants"
	locationController "courier-service/controllers/location"
	notificationController "courier-service/controllers/notification"
	paymentController "courier-service/controllers/payment"
	"courier-service/controllers/server"
	shipmentController "courier-service/controllers/shipment"
	trackingController "courier-service/controllers/tracking"
	"courier-service/httpServices/paymentgw"
	"courier-service/logger"
	"courier-service/middleware"
	notificationService "courier-service/services/notification"
	paymentService "courier-service/services/payment"
	shipmentService "courier-service/services/shipment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires services, controllers and role middleware onto the app.
// It returns the payment service so that main can hang the sweep schedule
// off it.
func SetupRoutes(app *fiber.App, db *gorm.DB) *paymentService.Service {
	gatewayClient := paymentgw.NewClient(os.Getenv("PAYMENT_GATEWAY_URL"))
	asyncLogger := logger.NewAsyncLogger(db)

	notifications := notificationService.NewNotificationService(db)
	shipments := shipmentService.NewShipmentService(db, notifications)
	payments := paymentService.NewPaymentService(db, gatewayClient, notifications)

	shipmentCtrl := shipmentController.NewShipmentController(db, shipments, asyncLogger)
	trackingCtrl := trackingController.NewTrackingController(db, shipments)
	notificationCtrl := notificationController.NewNotificationController(db, notifications, asyncLogger)
	paymentCtrl := paymentController.NewPaymentController(db, payments, asyncLogger)
	locationCtrl := locationController.NewLocationController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", server.Health)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api", middleware.RequestLogger(asyncLogger))
	api.Post("/track", trackingCtrl.Track)
	api.Get("/locations", locationCtrl.Index)
	api.Post("/payments/webhook", paymentCtrl.Webhook)

	/*=============================================================================
	| Shipment Routes
	===============================================================================*/
	shipmentGroup := api.Group("/shipments")

	shipmentGroup.Post("/", middleware.RequireRoles(
		constants.RoleCustomer, constants.RoleStaff, constants.RoleAdmin,
	), shipmentCtrl.Store)

	shipmentGroup.Get("/", middleware.RequireAuthentication(), shipmentCtrl.Index)

	// Bulk route before :id so the router does not swallow it
	shipmentGroup.Patch("/bulk-update-status", middleware.RequireRoles(
		constants.StaffRoles...,
	), shipmentCtrl.BulkUpdateStatus)

	shipmentGroup.Post("/parse-label", middleware.RequireRoles(
		constants.StaffRoles...,
	), shipmentCtrl.ParseLabel)

	shipmentGroup.Get("/:id", middleware.RequireAuthentication(), shipmentCtrl.Show)

	shipmentGroup.Patch("/:id/status", middleware.RequireRoles(
		constants.StaffRoles...,
	), shipmentCtrl.UpdateStatus)

	shipmentGroup.Post("/:id/pay", middleware.RequireRoles(
		constants.RoleCustomer, constants.RoleStaff, constants.RoleAdmin,
	), paymentCtrl.Start)

	/*=============================================================================
	| Notification Routes
	===============================================================================*/
	notificationGroup := api.Group("/notifications").Use(middleware.RequireAuthentication())
	notificationGroup.Get("/", notificationCtrl.Index)
	notificationGroup.Patch("/mark-all-read", notificationCtrl.MarkAllRead)
	notificationGroup.Patch("/:id/read", notificationCtrl.MarkRead)
	notificationGroup.Delete("/:id", notificationCtrl.Destroy)

	/*=============================================================================
	| Location Routes (admin)
	===============================================================================*/
	api.Post("/locations", middleware.RequireRoles(constants.RoleAdmin), locationCtrl.Store)

	return payments
}
