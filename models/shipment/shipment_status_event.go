package shipment

import (
	"courier-service/models/user"
	"time"
)

// ShipmentStatusEvent is one entry of a shipment's append-only status audit
// trail. Entries are created only as a side effect of a status mutation
// (including the initial pending assignment at creation) and are never
// updated or deleted.
type ShipmentStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for shipment relationship
	ShipmentID uint     `gorm:"not null;index" json:"shipment_id"`
	Shipment   Shipment `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE" json:"-"`

	Status   ShipmentStatus `gorm:"size:20;not null" json:"status"`
	Location string         `gorm:"type:varchar(255)" json:"location,omitempty"`
	Notes    string         `gorm:"type:varchar(1000)" json:"notes,omitempty"`

	// Nullable so that system-originated entries carry no actor
	ActorID *uint      `gorm:"index" json:"actor_id,omitempty"`
	Actor   *user.User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName sets the table name for the ShipmentStatusEvent model
func (ShipmentStatusEvent) TableName() string {
	return "shipment_status_events"
}
