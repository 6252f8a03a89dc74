package labelparser

import (
	"time"

	"gorm.io/gorm"
)

// LabelParseRequest represents a waybill/label photo parsing request
type LabelParseRequest struct {
	ID               uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID        string `json:"request_id" gorm:"type:varchar(24);uniqueIndex;not null"` // 24 character unique ID
	OriginalFileName string `json:"original_file_name" gorm:"type:varchar(255);not null"`
	SavedFileName    string `json:"saved_file_name" gorm:"type:varchar(255);not null"`
	FileHash         string `json:"file_hash" gorm:"type:varchar(128);index"` // SHA256 hash
	FilePath         string `json:"file_path" gorm:"type:varchar(500);not null"`
	FileSize         int64  `json:"file_size" gorm:"not null"`
	MimeType         string `json:"mime_type" gorm:"type:varchar(100);not null"`
	Status           string `json:"status" gorm:"type:varchar(50);not null;default:'processing';index"` // processing, success, failed
	ProcessingTimeMs int64  `json:"processing_time_ms" gorm:"default:0"`

	// Parsed data fields
	RecipientName  string `json:"recipient_name" gorm:"type:varchar(255);default:''"`
	RecipientPhone string `json:"recipient_phone" gorm:"type:varchar(20);index;default:''"`
	AddressText    string `json:"address_text" gorm:"type:text;default:''"`
	City           string `json:"city" gorm:"type:varchar(255);default:''"`
	PostalCode     string `json:"postal_code" gorm:"type:varchar(20);default:''"`
	Country        string `json:"country" gorm:"type:varchar(100);default:''"`
	Carrier        string `json:"carrier" gorm:"type:varchar(100);default:''"`
	ReferenceCode  string `json:"reference_code" gorm:"type:varchar(100);index;default:''"`

	// Error information
	ErrorMessage string `json:"error_message" gorm:"type:text;default:''"`

	// Metadata
	IPAddress string `json:"ip_address" gorm:"type:varchar(45);index;default:''"` // Support IPv6
	UserAgent string `json:"user_agent" gorm:"type:text;default:''"`

	// Timestamps
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName returns the table name for LabelParseRequest
func (LabelParseRequest) TableName() string {
	return "label_parse_requests"
}

// BeforeCreate hook to set default values
func (lpr *LabelParseRequest) BeforeCreate(tx *gorm.DB) error {
	if lpr.Status == "" {
		lpr.Status = "processing"
	}
	return nil
}

// IsProcessing checks if the request is still processing
func (lpr *LabelParseRequest) IsProcessing() bool {
	return lpr.Status == "processing"
}

// IsSuccess checks if the request was successful
func (lpr *LabelParseRequest) IsSuccess() bool {
	return lpr.Status == "success"
}

// IsFailed checks if the request failed
func (lpr *LabelParseRequest) IsFailed() bool {
	return lpr.Status == "failed"
}

// MarkAsSuccess marks the request as successful and saves parsed data
func (lpr *LabelParseRequest) MarkAsSuccess(db *gorm.DB, parsed *LabelParseResult) error {
	lpr.Status = "success"
	lpr.RecipientName = parsed.RecipientName
	lpr.RecipientPhone = parsed.RecipientPhone
	lpr.AddressText = parsed.AddressText
	lpr.City = parsed.City
	lpr.PostalCode = parsed.PostalCode
	lpr.Country = parsed.Country
	lpr.Carrier = parsed.Carrier
	lpr.ReferenceCode = parsed.ReferenceCode
	lpr.ProcessingTimeMs = parsed.ProcessingTimeMs

	return db.Save(lpr).Error
}

// MarkAsFailed marks the request as failed with error message
func (lpr *LabelParseRequest) MarkAsFailed(db *gorm.DB, errorMsg string, processingTime int64) error {
	lpr.Status = "failed"
	lpr.ErrorMessage = errorMsg
	lpr.ProcessingTimeMs = processingTime

	return db.Save(lpr).Error
}

// LabelParseResult represents the parsed data response
type LabelParseResult struct {
	RequestID        string `json:"request_id"`
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	AddressText      string `json:"address_text"`
	City             string `json:"city"`
	PostalCode       string `json:"postal_code"`
	Country          string `json:"country"`
	Carrier          string `json:"carrier"`
	ReferenceCode    string `json:"reference_code"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}
