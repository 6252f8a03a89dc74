package database

import (
	"courier-service/models/labelparser"
	"courier-service/models/location"
	log_model "courier-service/models/log"
	"courier-service/models/notification"
	"courier-service/models/payment"
	"courier-service/models/shipment"
	"courier-service/models/user"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every model. Order matters:
// relationship roots first so that foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&location.Location{},
		&shipment.Shipment{},
		&shipment.ShipmentStatusEvent{},
		&notification.Notification{},
		&payment.PaymentRecord{},
		&labelparser.LabelParseRequest{},
		&log_model.Log{},
	)
}
