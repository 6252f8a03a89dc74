package shipment

import (
	"courier-service/models/location"
	"courier-service/models/user"
	"time"
)

// Shipment represents a shippable package tracked from creation to delivery
type Shipment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Public opaque identifier, assigned once at creation, never reassigned
	TrackingID string `gorm:"type:varchar(36);not null;uniqueIndex" json:"tracking_id"`

	// Foreign key for users relationship (the sender owns the shipment)
	SenderID uint      `gorm:"not null;index" json:"sender_id"`
	Sender   user.User `gorm:"foreignKey:SenderID" json:"sender"`

	RecipientName  string  `gorm:"type:varchar(255);not null" json:"recipient_name"`
	RecipientPhone string  `gorm:"type:varchar(20);not null" json:"recipient_phone"`
	RecipientEmail *string `gorm:"type:varchar(255)" json:"recipient_email,omitempty"`

	// Foreign keys for location relationships; origin and destination must differ
	OriginLocationID      uint              `gorm:"not null" json:"origin_location_id"`
	OriginLocation        location.Location `gorm:"foreignKey:OriginLocationID" json:"origin_location"`
	DestinationLocationID uint              `gorm:"not null" json:"destination_location_id"`
	DestinationLocation   location.Location `gorm:"foreignKey:DestinationLocationID" json:"destination_location"`

	Description   string  `gorm:"type:text;not null" json:"description"`
	WeightKg      float64 `gorm:"not null" json:"weight_kg"`
	LengthCm      float64 `gorm:"default:0" json:"length_cm"`
	WidthCm       float64 `gorm:"default:0" json:"width_cm"`
	HeightCm      float64 `gorm:"default:0" json:"height_cm"`
	DeclaredValue float64 `gorm:"default:0" json:"declared_value"`

	ServiceTier ServiceTier    `gorm:"size:20;not null;default:standard" json:"service_tier"`
	Status      ShipmentStatus `gorm:"size:20;not null;default:pending;index" json:"status"`

	Price         float64       `gorm:"not null" json:"price"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:pending" json:"payment_status"`

	PickedUpAt          *time.Time `gorm:"" json:"picked_up_at,omitempty"`
	DeliveredAt         *time.Time `gorm:"" json:"delivered_at,omitempty"`
	EstimatedDeliveryAt *time.Time `gorm:"" json:"estimated_delivery_at,omitempty"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	// Exclusively owned history; removed with the shipment
	StatusEvents []ShipmentStatusEvent `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE" json:"status_events,omitempty"`

	CreatedBy string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string     `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the table name for the Shipment model
func (Shipment) TableName() string {
	return "shipments"
}
