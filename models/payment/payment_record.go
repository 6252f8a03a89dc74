package payment

import (
	"courier-service/models/shipment"
	"courier-service/models/user"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// PaymentStatus is the state of a single payment attempt.
type PaymentStatus string

const (
	StatusPending        PaymentStatus = "pending"
	StatusSucceeded      PaymentStatus = "succeeded"
	StatusFailed         PaymentStatus = "failed"
	StatusCanceled       PaymentStatus = "canceled"
	StatusRequiresAction PaymentStatus = "requires_action"
)

func (ps PaymentStatus) IsValid() bool {
	switch ps {
	case StatusPending, StatusSucceeded, StatusFailed, StatusCanceled, StatusRequiresAction:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the attempt has reached a final outcome.
func (ps PaymentStatus) IsTerminal() bool {
	return ps == StatusSucceeded || ps == StatusFailed
}

// PaymentType distinguishes gateway-driven charges from manual collection.
type PaymentType string

const (
	TypeAutomatic PaymentType = "automatic"
	TypeManual    PaymentType = "manual"
)

// Metadata is a free-form JSON document attached to a payment attempt.
type Metadata map[string]interface{}

// Scan implements the Scanner interface for database deserialization
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported metadata column type")
	}
}

// Value implements the driver Valuer interface for database serialization
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// PaymentRecord tracks one payment attempt against a shipment. Amount is
// immutable after creation; CompletedAt is set only when the status reaches
// a terminal state. Records are never deleted.
type PaymentRecord struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for shipment relationship
	ShipmentID uint              `gorm:"not null;index" json:"shipment_id"`
	Shipment   shipment.Shipment `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE" json:"-"`

	// Foreign key for users relationship (the payer)
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"-"`

	IntentID *string `gorm:"type:varchar(255);index" json:"intent_id,omitempty"`

	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"type:varchar(3);not null;default:USD" json:"currency"`

	Status PaymentStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	Type   PaymentType   `gorm:"size:20;not null;default:automatic" json:"type"`

	ChargeID      *string  `gorm:"type:varchar(255)" json:"charge_id,omitempty"`
	FailureReason *string  `gorm:"type:text" json:"failure_reason,omitempty"`
	Metadata      Metadata `gorm:"type:json" json:"metadata,omitempty"`

	AttemptedAt time.Time  `gorm:"not null" json:"attempted_at"`
	CompletedAt *time.Time `gorm:"" json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the PaymentRecord model
func (PaymentRecord) TableName() string {
	return "payment_history"
}
