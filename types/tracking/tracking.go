package tracking

import (
	"fmt"

	"courier-service/apperr"
	shipmentModel "courier-service/models/shipment"
)

// TrackRequest is the public tracking lookup payload.
type TrackRequest struct {
	TrackingID string `json:"tracking_id" validate:"required"`
}

// Validate validates the TrackRequest fields
func (r *TrackRequest) Validate() error {
	if r.TrackingID == "" {
		return fmt.Errorf("%w: tracking_id is required", apperr.Invalid)
	}
	return nil
}

// HistoryItem is one entry of the public tracking timeline.
type HistoryItem struct {
	Status    shipmentModel.ShipmentStatus `json:"status"`
	Location  string                       `json:"location,omitempty"`
	Notes     string                       `json:"notes,omitempty"`
	CreatedAt string                       `json:"created_at"`
}

// TrackResponse is the public view of a shipment and its full history,
// newest entry first.
type TrackResponse struct {
	TrackingID          string                         `json:"tracking_id"`
	Status              shipmentModel.ShipmentStatus   `json:"status"`
	ServiceTier         shipmentModel.ServiceTier      `json:"service_tier"`
	Origin              string                         `json:"origin"`
	Destination         string                         `json:"destination"`
	EstimatedDeliveryAt string                         `json:"estimated_delivery_at,omitempty"`
	DeliveredAt         string                         `json:"delivered_at,omitempty"`
	History             []HistoryItem                  `json:"history"`
}
