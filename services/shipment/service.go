package shipment

import (
	"errors"
	"fmt"
	"time"

	"courier-service/apperr"
	"courier-service/constants"
	locationModel "courier-service/models/location"
	notificationModel "courier-service/models/notification"
	shipmentModel "courier-service/models/shipment"
	userModel "courier-service/models/user"
	notificationService "courier-service/services/notification"
	"courier-service/services/pricing"
	shipmentTypes "courier-service/types/shipment"
	trackingTypes "courier-service/types/tracking"
	"courier-service/utils"

	"gorm.io/gorm"
)

// Service orchestrates the shipment lifecycle: creation, status mutation
// with its audit trail, bulk transitions and tracking lookup.
type Service struct {
	DB            *gorm.DB
	Notifications *notificationService.Service
}

// NewShipmentService creates a new shipment service
func NewShipmentService(db *gorm.DB, notifications *notificationService.Service) *Service {
	return &Service{
		DB:            db,
		Notifications: notifications,
	}
}

// Create validates and persists a new shipment owned by sender. The status
// is forced to pending regardless of caller input, the tracking id is
// assigned here and never reassigned, and the initial pending status event
// is appended in the same transaction.
func (s *Service) Create(sender *userModel.User, req *shipmentTypes.ShipmentCreateRequest) (*shipmentModel.Shipment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Both endpoints must exist before anything is written
	var origin, destination locationModel.Location
	if err := s.DB.First(&origin, req.OriginLocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: origin location %d does not exist", apperr.Invalid, req.OriginLocationID)
		}
		return nil, err
	}
	if err := s.DB.First(&destination, req.DestinationLocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: destination location %d does not exist", apperr.Invalid, req.DestinationLocationID)
		}
		return nil, err
	}

	tier := req.Tier()
	createdAt := time.Now()
	estimated := pricing.EstimatedDelivery(tier, createdAt)

	sh := shipmentModel.Shipment{
		TrackingID:            utils.NewTrackingID(),
		SenderID:              sender.ID,
		RecipientName:         req.RecipientName,
		RecipientPhone:        req.RecipientPhone,
		OriginLocationID:      req.OriginLocationID,
		DestinationLocationID: req.DestinationLocationID,
		Description:           req.Description,
		WeightKg:              req.WeightKg,
		LengthCm:              req.LengthCm,
		WidthCm:               req.WidthCm,
		HeightCm:              req.HeightCm,
		DeclaredValue:         req.DeclaredValue,
		ServiceTier:           tier,
		Status:                shipmentModel.StatusPending,
		Price:                 pricing.Quote(tier, req.WeightKg, req.DeclaredValue),
		PaymentStatus:         shipmentModel.PaymentPending,
		EstimatedDeliveryAt:   &estimated,
		Notes:                 req.Notes,
		CreatedBy:             sender.Uuid,
	}
	if req.RecipientEmail != "" {
		email := req.RecipientEmail
		sh.RecipientEmail = &email
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sh).Error; err != nil {
			return fmt.Errorf("failed to create shipment: %w", err)
		}

		// The initial pending assignment is a status mutation like any
		// other and gets its history entry
		actorID := sender.ID
		event := shipmentModel.ShipmentStatusEvent{
			ShipmentID: sh.ID,
			Status:     shipmentModel.StatusPending,
			ActorID:    &actorID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to append status event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &sh, nil
}

// UpdateStatus applies a status change to one shipment: membership check on
// the flat status set, unconditional overwrite, delivered-at set-once,
// exactly one history entry, one notification to the sender. The three
// writes share one transaction.
func (s *Service) UpdateStatus(shipmentID uint, req *shipmentTypes.StatusUpdateRequest, actor *userModel.User) (*shipmentModel.Shipment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var sh shipmentModel.Shipment
	if err := s.DB.First(&sh, shipmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: shipment %d", apperr.NotFound, shipmentID)
		}
		return nil, err
	}

	target := shipmentModel.ShipmentStatus(req.Status)
	nowTime := time.Now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status": target,
		}
		if actor != nil {
			updates["updated_by"] = actor.Uuid
		}

		// Set-once timestamps: never overwritten on repeat transitions
		if target == shipmentModel.StatusDelivered && sh.DeliveredAt == nil {
			updates["delivered_at"] = nowTime
			sh.DeliveredAt = &nowTime
		}
		if target == shipmentModel.StatusPickedUp && sh.PickedUpAt == nil {
			updates["picked_up_at"] = nowTime
			sh.PickedUpAt = &nowTime
		}

		if err := tx.Model(&sh).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update shipment status: %w", err)
		}

		event := shipmentModel.ShipmentStatusEvent{
			ShipmentID: sh.ID,
			Status:     target,
			Location:   req.Location,
			Notes:      req.Notes,
		}
		if actor != nil {
			actorID := actor.ID
			event.ActorID = &actorID
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to append status event: %w", err)
		}

		_, err := s.Notifications.Emit(tx, notificationService.EmitInput{
			UserID:   sh.SenderID,
			Category: categoryForStatus(target),
			Title:    "Shipment update",
			Message:  fmt.Sprintf("Your shipment %s is now %s.", sh.TrackingID, target.HumanLabel()),
			Payload: notificationModel.Payload{
				"shipment_id": sh.ID,
				"tracking_id": sh.TrackingID,
				"status":      string(target),
			},
			ActionURL:   "/track/" + sh.TrackingID,
			ActionLabel: "Track shipment",
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	sh.Status = target
	return &sh, nil
}

// BulkItemOutcome is the per-item result of a bulk transition.
type BulkItemOutcome string

const (
	BulkUpdated BulkItemOutcome = "updated"
	BulkSkipped BulkItemOutcome = "skipped"
	BulkFailed  BulkItemOutcome = "failed"
)

// BulkItemResult records what happened to one shipment id.
type BulkItemResult struct {
	ShipmentID uint            `json:"shipment_id"`
	Outcome    BulkItemOutcome `json:"outcome"`
	Error      string          `json:"error,omitempty"`
}

// BulkResult aggregates a bulk status update.
type BulkResult struct {
	Updated    int              `json:"updated"`
	SkippedIDs []uint           `json:"skipped_ids,omitempty"`
	Items      []BulkItemResult `json:"-"`
}

// BulkUpdateStatus applies one shared status payload to each shipment id in
// turn. Items are independent: a missing id is skipped silently, a failing
// item does not roll back earlier ones, and there is no transaction spanning
// the batch.
func (s *Service) BulkUpdateStatus(req *shipmentTypes.BulkStatusUpdateRequest, actor *userModel.User) (*BulkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	single := shipmentTypes.StatusUpdateRequest{
		Status:   req.Status,
		Location: req.Location,
		Notes:    req.Notes,
	}

	result := &BulkResult{}
	for _, id := range req.ShipmentIDs {
		_, err := s.UpdateStatus(id, &single, actor)
		switch {
		case err == nil:
			result.Updated++
			result.Items = append(result.Items, BulkItemResult{ShipmentID: id, Outcome: BulkUpdated})
		case isNotFound(err):
			result.SkippedIDs = append(result.SkippedIDs, id)
			result.Items = append(result.Items, BulkItemResult{ShipmentID: id, Outcome: BulkSkipped})
		default:
			result.Items = append(result.Items, BulkItemResult{ShipmentID: id, Outcome: BulkFailed, Error: err.Error()})
		}
	}
	return result, nil
}

// Track looks a shipment up by its public tracking identifier and returns
// the public view with the full history, newest first. A miss has zero side
// effects.
func (s *Service) Track(trackingID string) (*trackingTypes.TrackResponse, error) {
	var sh shipmentModel.Shipment
	err := s.DB.
		Preload("OriginLocation").
		Preload("DestinationLocation").
		Where("tracking_id = ?", trackingID).
		First(&sh).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: no shipment with tracking id %q", apperr.NotFound, trackingID)
		}
		return nil, err
	}

	var events []shipmentModel.ShipmentStatusEvent
	if err := s.DB.
		Where("shipment_id = ?", sh.ID).
		Order("created_at DESC, id DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}

	resp := &trackingTypes.TrackResponse{
		TrackingID:  sh.TrackingID,
		Status:      sh.Status,
		ServiceTier: sh.ServiceTier,
		Origin:      sh.OriginLocation.Name,
		Destination: sh.DestinationLocation.Name,
	}
	if sh.EstimatedDeliveryAt != nil {
		resp.EstimatedDeliveryAt = sh.EstimatedDeliveryAt.Format(time.RFC3339)
	}
	if sh.DeliveredAt != nil {
		resp.DeliveredAt = sh.DeliveredAt.Format(time.RFC3339)
	}
	for _, e := range events {
		resp.History = append(resp.History, trackingTypes.HistoryItem{
			Status:    e.Status,
			Location:  e.Location,
			Notes:     e.Notes,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// Get returns one shipment with its relations. Customers only see their own
// shipments; staff and admin see all.
func (s *Service) Get(shipmentID uint, actor *userModel.User) (*shipmentModel.Shipment, error) {
	var sh shipmentModel.Shipment
	err := s.DB.
		Preload("Sender").
		Preload("OriginLocation").
		Preload("DestinationLocation").
		First(&sh, shipmentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: shipment %d", apperr.NotFound, shipmentID)
		}
		return nil, err
	}

	if !isStaff(actor) && sh.SenderID != actor.ID {
		return nil, fmt.Errorf("%w: shipment belongs to another user", apperr.Unauthorized)
	}
	return &sh, nil
}

// List returns shipments visible to the actor, newest first, with an
// optional status filter.
func (s *Service) List(actor *userModel.User, status string, limit, offset int) ([]shipmentModel.Shipment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := s.DB.
		Preload("OriginLocation").
		Preload("DestinationLocation").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)

	if !isStaff(actor) {
		q = q.Where("sender_id = ?", actor.ID)
	}
	if status != "" {
		if !shipmentModel.ShipmentStatus(status).IsValid() {
			return nil, fmt.Errorf("%w: status %q is not one of %v",
				apperr.Invalid, status, shipmentModel.GetAllShipmentStatuses())
		}
		q = q.Where("status = ?", status)
	}

	var shipments []shipmentModel.Shipment
	err := q.Find(&shipments).Error
	return shipments, err
}

// History returns the audit trail of one shipment, newest first.
func (s *Service) History(shipmentID uint) ([]shipmentModel.ShipmentStatusEvent, error) {
	var events []shipmentModel.ShipmentStatusEvent
	err := s.DB.
		Where("shipment_id = ?", shipmentID).
		Order("created_at DESC, id DESC").
		Find(&events).Error
	return events, err
}

func categoryForStatus(status shipmentModel.ShipmentStatus) notificationModel.NotificationCategory {
	switch {
	case status == shipmentModel.StatusDelivered:
		return notificationModel.CategorySuccess
	case status.IsTerminalLike():
		// cancelled and returned end the shipment without a delivery
		return notificationModel.CategoryWarning
	default:
		return notificationModel.CategoryInfo
	}
}

func isStaff(u *userModel.User) bool {
	if u == nil {
		return false
	}
	return u.HasRole(constants.RoleStaff) || u.HasRole(constants.RoleAdmin)
}

func isNotFound(err error) bool {
	return errors.Is(err, apperr.NotFound)
}
