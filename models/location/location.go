package location

import (
	"time"
)

// Location represents a named postal address used as a shipment origin or
// destination. Locations are immutable once shipments reference them; no
// update path is exposed.
type Location struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string   `gorm:"type:varchar(255);not null" json:"name"`
	Street     string   `gorm:"type:varchar(255);not null" json:"street"`
	City       string   `gorm:"type:varchar(255);not null" json:"city"`
	State      string   `gorm:"type:varchar(255)" json:"state,omitempty"`
	PostalCode string   `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country    string   `gorm:"type:varchar(100);not null" json:"country"`
	Latitude   *float64 `gorm:"" json:"latitude,omitempty"`
	Longitude  *float64 `gorm:"" json:"longitude,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Location model
func (Location) TableName() string {
	return "locations"
}
