package payment

import (
	"fmt"
	"time"

	"courier-service/apperr"
	"courier-service/httpServices/paymentgw"
	"courier-service/logger"
	notificationModel "courier-service/models/notification"
	paymentModel "courier-service/models/payment"
	shipmentModel "courier-service/models/shipment"
	userModel "courier-service/models/user"
	notificationService "courier-service/services/notification"

	"gorm.io/gorm"
)

// How long a pending attempt may sit before the sweep expires it.
const stalePendingAge = 24 * time.Hour

// Service tracks payment attempts against shipments. Charge execution lives
// at the external gateway; this service records attempts and applies the
// terminal outcomes reported back by the webhook.
type Service struct {
	DB            *gorm.DB
	Gateway       *paymentgw.Client
	Notifications *notificationService.Service
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, gateway *paymentgw.Client, notifications *notificationService.Service) *Service {
	return &Service{
		DB:            db,
		Gateway:       gateway,
		Notifications: notifications,
	}
}

// Start begins a payment attempt for a shipment: an intent is created at the
// gateway and a pending PaymentRecord is persisted. Amount is copied from
// the shipment price and is immutable afterwards.
func (s *Service) Start(shipmentID uint, payer *userModel.User, currency string) (*paymentModel.PaymentRecord, error) {
	var sh shipmentModel.Shipment
	if err := s.DB.First(&sh, shipmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: shipment %d", apperr.NotFound, shipmentID)
		}
		return nil, err
	}

	if sh.SenderID != payer.ID {
		return nil, fmt.Errorf("%w: shipment belongs to another user", apperr.Unauthorized)
	}

	if sh.PaymentStatus == shipmentModel.PaymentPaid {
		return nil, fmt.Errorf("%w: shipment is already paid", apperr.Invalid)
	}

	if currency == "" {
		currency = "USD"
	}

	intent, err := s.Gateway.CreateIntent(paymentgw.CreateIntentRequest{
		Amount:      sh.Price,
		Currency:    currency,
		Reference:   sh.TrackingID,
		Description: "Courier shipment " + sh.TrackingID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	record := paymentModel.PaymentRecord{
		ShipmentID:  sh.ID,
		UserID:      payer.ID,
		IntentID:    &intent.IntentID,
		Amount:      sh.Price,
		Currency:    currency,
		Status:      paymentModel.StatusPending,
		Type:        paymentModel.TypeAutomatic,
		AttemptedAt: time.Now(),
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}

	return &record, nil
}

// HandleSuccess applies the gateway's success callback: terminal transition
// on the record, paid projection on the shipment, notification to the payer.
// A replayed callback for an already-terminal record is a no-op.
func (s *Service) HandleSuccess(intentID, chargeID string, metadata map[string]interface{}) (*paymentModel.PaymentRecord, error) {
	return s.complete(intentID, paymentModel.StatusSucceeded, chargeID, "", metadata)
}

// HandleFailure applies the gateway's failure callback.
func (s *Service) HandleFailure(intentID, failureReason string, metadata map[string]interface{}) (*paymentModel.PaymentRecord, error) {
	return s.complete(intentID, paymentModel.StatusFailed, "", failureReason, metadata)
}

func (s *Service) complete(intentID string, target paymentModel.PaymentStatus, chargeID, failureReason string, metadata map[string]interface{}) (*paymentModel.PaymentRecord, error) {
	var record paymentModel.PaymentRecord
	if err := s.DB.Where("intent_id = ?", intentID).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no payment record for intent %q", apperr.NotFound, intentID)
		}
		return nil, err
	}

	// Replays are tolerated but change nothing
	if record.Status.IsTerminal() {
		return &record, nil
	}

	completedAt := time.Now()
	shipmentStatus := shipmentModel.PaymentPaid
	if target == paymentModel.StatusFailed {
		shipmentStatus = shipmentModel.PaymentFailed
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":       target,
			"completed_at": completedAt,
		}
		if chargeID != "" {
			updates["charge_id"] = chargeID
		}
		if failureReason != "" {
			updates["failure_reason"] = failureReason
		}
		if metadata != nil {
			updates["metadata"] = paymentModel.Metadata(metadata)
		}
		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to finalize payment record: %w", err)
		}

		if err := tx.Model(&shipmentModel.Shipment{}).
			Where("id = ?", record.ShipmentID).
			Update("payment_status", shipmentStatus).Error; err != nil {
			return fmt.Errorf("failed to project payment status onto shipment: %w", err)
		}

		title := "Payment received"
		message := fmt.Sprintf("Your payment of %.2f %s was successful.", record.Amount, record.Currency)
		category := notificationModel.CategorySuccess
		if target == paymentModel.StatusFailed {
			title = "Payment failed"
			message = fmt.Sprintf("Your payment of %.2f %s failed.", record.Amount, record.Currency)
			if failureReason != "" {
				message += " Reason: " + failureReason
			}
			category = notificationModel.CategoryError
		}

		_, err := s.Notifications.Emit(tx, notificationService.EmitInput{
			UserID:   record.UserID,
			Category: category,
			Title:    title,
			Message:  message,
			Payload: notificationModel.Payload{
				"payment_id":  record.ID,
				"shipment_id": record.ShipmentID,
				"status":      string(target),
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	record.Status = target
	record.CompletedAt = &completedAt
	return &record, nil
}

// SweepStalePending expires pending attempts older than stalePendingAge.
// Wired to the cron schedule in main.
func (s *Service) SweepStalePending() {
	cutoff := time.Now().Add(-stalePendingAge)

	var stale []paymentModel.PaymentRecord
	if err := s.DB.
		Where("status = ? AND attempted_at < ?", paymentModel.StatusPending, cutoff).
		Find(&stale).Error; err != nil {
		logger.Error("Failed to load stale pending payments", err)
		return
	}

	for _, record := range stale {
		if record.IntentID == nil {
			// Manual records carry no intent; fail them in place
			now := time.Now()
			reason := "expired"
			err := s.DB.Model(&record).Updates(map[string]interface{}{
				"status":         paymentModel.StatusFailed,
				"failure_reason": reason,
				"completed_at":   now,
			}).Error
			if err != nil {
				logger.Error(fmt.Sprintf("Failed to expire payment record %d", record.ID), err)
			}
			continue
		}
		if _, err := s.HandleFailure(*record.IntentID, "expired", nil); err != nil {
			logger.Error(fmt.Sprintf("Failed to expire payment record %d", record.ID), err)
		}
	}

	if len(stale) > 0 {
		logger.Info(fmt.Sprintf("Expired %d stale pending payment(s)", len(stale)))
	}
}
