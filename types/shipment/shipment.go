package shipment

import (
	"fmt"

	"courier-service/apperr"
	shipmentModel "courier-service/models/shipment"
)

const (
	// Field length caps for status-update payloads
	MaxLocationLen = 255
	MaxNotesLen    = 1000
)

// ShipmentCreateRequest is the payload for creating a shipment.
type ShipmentCreateRequest struct {
	RecipientName         string  `json:"recipient_name" validate:"required"`
	RecipientPhone        string  `json:"recipient_phone" validate:"required"`
	RecipientEmail        string  `json:"recipient_email"`
	OriginLocationID      uint    `json:"origin_location_id" validate:"required"`
	DestinationLocationID uint    `json:"destination_location_id" validate:"required"`
	Description           string  `json:"description" validate:"required"`
	WeightKg              float64 `json:"weight_kg" validate:"required"`
	LengthCm              float64 `json:"length_cm"`
	WidthCm               float64 `json:"width_cm"`
	HeightCm              float64 `json:"height_cm"`
	DeclaredValue         float64 `json:"declared_value"`
	ServiceTier           string  `json:"service_tier"`
	Notes                 string  `json:"notes"`

	// Ignored on purpose: status is forced to pending at creation no matter
	// what the caller sends.
	Status string `json:"status,omitempty"`
}

// Validate validates the ShipmentCreateRequest fields
func (r *ShipmentCreateRequest) Validate() error {
	if r.RecipientName == "" {
		return fmt.Errorf("%w: recipient_name is required", apperr.Invalid)
	}

	if r.RecipientPhone == "" {
		return fmt.Errorf("%w: recipient_phone is required", apperr.Invalid)
	}

	if r.Description == "" {
		return fmt.Errorf("%w: description is required", apperr.Invalid)
	}

	if r.WeightKg <= 0 {
		return fmt.Errorf("%w: weight_kg must be greater than zero", apperr.Invalid)
	}

	if r.OriginLocationID == 0 {
		return fmt.Errorf("%w: origin_location_id is required", apperr.Invalid)
	}

	if r.DestinationLocationID == 0 {
		return fmt.Errorf("%w: destination_location_id is required", apperr.Invalid)
	}

	// Origin and destination must be distinct locations
	if r.OriginLocationID == r.DestinationLocationID {
		return fmt.Errorf("%w: origin and destination locations must differ", apperr.Invalid)
	}

	if r.ServiceTier != "" && !shipmentModel.ServiceTier(r.ServiceTier).IsValid() {
		return fmt.Errorf("%w: service_tier must be one of standard, express, overnight", apperr.Invalid)
	}

	return nil
}

// Tier returns the requested service tier, defaulting to standard.
func (r *ShipmentCreateRequest) Tier() shipmentModel.ServiceTier {
	if r.ServiceTier == "" {
		return shipmentModel.TierStandard
	}
	return shipmentModel.ServiceTier(r.ServiceTier)
}

// StatusUpdateRequest is the payload for a single status change.
type StatusUpdateRequest struct {
	Status   string `json:"status" validate:"required"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// Validate validates the StatusUpdateRequest fields
func (r *StatusUpdateRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("%w: status is required", apperr.Invalid)
	}

	if !shipmentModel.ShipmentStatus(r.Status).IsValid() {
		return fmt.Errorf("%w: status %q is not one of %v",
			apperr.Invalid, r.Status, shipmentModel.GetAllShipmentStatuses())
	}

	if len(r.Location) > MaxLocationLen {
		return fmt.Errorf("%w: location must be at most %d characters", apperr.Invalid, MaxLocationLen)
	}

	if len(r.Notes) > MaxNotesLen {
		return fmt.Errorf("%w: notes must be at most %d characters", apperr.Invalid, MaxNotesLen)
	}

	return nil
}

// BulkStatusUpdateRequest applies one status/location/notes payload to many
// shipments.
type BulkStatusUpdateRequest struct {
	ShipmentIDs []uint `json:"shipment_ids" validate:"required"`
	Status      string `json:"status" validate:"required"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
}

// Validate validates the BulkStatusUpdateRequest fields
func (r *BulkStatusUpdateRequest) Validate() error {
	if len(r.ShipmentIDs) == 0 {
		return fmt.Errorf("%w: shipment_ids must not be empty", apperr.Invalid)
	}

	single := StatusUpdateRequest{Status: r.Status, Location: r.Location, Notes: r.Notes}
	return single.Validate()
}
