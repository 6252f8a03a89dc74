package notification

import (
	"courier-service/models/user"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// NotificationCategory classifies a notification for display purposes.
type NotificationCategory string

const (
	CategoryInfo    NotificationCategory = "info"
	CategorySuccess NotificationCategory = "success"
	CategoryWarning NotificationCategory = "warning"
	CategoryError   NotificationCategory = "error"
)

func (nc NotificationCategory) IsValid() bool {
	switch nc {
	case CategoryInfo, CategorySuccess, CategoryWarning, CategoryError:
		return true
	default:
		return false
	}
}

// Payload is a free-form JSON document attached to a notification.
type Payload map[string]interface{}

// Scan implements the Scanner interface for database deserialization
func (p *Payload) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported payload column type")
	}
}

// Value implements the driver Valuer interface for database serialization
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Notification is a unidirectional, per-user informational record.
// ReadAt transitions null -> non-null exactly once; marking an already-read
// notification again is a no-op.
type Notification struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for users relationship (the recipient owns the record)
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"-"`

	Category NotificationCategory `gorm:"size:20;not null;default:info" json:"category"`
	Title    string               `gorm:"type:varchar(255);not null" json:"title"`
	Message  string               `gorm:"type:text;not null" json:"message"`
	Payload  Payload              `gorm:"type:json" json:"payload,omitempty"`

	ActionURL   *string `gorm:"type:varchar(2048)" json:"action_url,omitempty"`
	ActionLabel *string `gorm:"type:varchar(255)" json:"action_label,omitempty"`

	ReadAt *time.Time `gorm:"index" json:"read_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
