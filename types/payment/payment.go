package payment

import (
	"fmt"

	"courier-service/apperr"
)

// StartPaymentRequest begins a payment attempt for a shipment.
type StartPaymentRequest struct {
	Currency string `json:"currency"`
}

// WebhookPayload is the callback body posted by the payment gateway once an
// attempt reaches a final outcome.
type WebhookPayload struct {
	IntentID      string                 `json:"intent_id" validate:"required"`
	Event         string                 `json:"event" validate:"required"` // payment.succeeded | payment.failed
	ChargeID      string                 `json:"charge_id"`
	FailureReason string                 `json:"failure_reason"`
	Metadata      map[string]interface{} `json:"metadata"`
}

const (
	EventSucceeded = "payment.succeeded"
	EventFailed    = "payment.failed"
)

// Validate validates the WebhookPayload fields
func (p *WebhookPayload) Validate() error {
	if p.IntentID == "" {
		return fmt.Errorf("%w: intent_id is required", apperr.Invalid)
	}

	if p.Event != EventSucceeded && p.Event != EventFailed {
		return fmt.Errorf("%w: event must be either %q or %q", apperr.Invalid, EventSucceeded, EventFailed)
	}

	return nil
}
