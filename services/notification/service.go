package notification

import (
	"fmt"
	"time"

	"courier-service/apperr"
	notificationModel "courier-service/models/notification"

	"gorm.io/gorm"
)

// Service handles notification emission and read-state transitions
type Service struct {
	DB *gorm.DB
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// EmitInput carries everything needed to create a notification.
type EmitInput struct {
	UserID      uint
	Category    notificationModel.NotificationCategory
	Title       string
	Message     string
	Payload     notificationModel.Payload
	ActionURL   string
	ActionLabel string
}

// Emit creates an unread notification addressed to a user. When tx is nil
// the service's own connection is used; lifecycle callers pass their
// transaction so the notification commits or rolls back with the status
// write.
func (s *Service) Emit(tx *gorm.DB, in EmitInput) (*notificationModel.Notification, error) {
	if tx == nil {
		tx = s.DB
	}

	if !in.Category.IsValid() {
		in.Category = notificationModel.CategoryInfo
	}

	n := notificationModel.Notification{
		UserID:   in.UserID,
		Category: in.Category,
		Title:    in.Title,
		Message:  in.Message,
		Payload:  in.Payload,
	}
	if in.ActionURL != "" {
		n.ActionURL = &in.ActionURL
	}
	if in.ActionLabel != "" {
		n.ActionLabel = &in.ActionLabel
	}

	if err := tx.Create(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

// List returns a user's notifications, newest first.
func (s *Service) List(userID uint, unreadOnly bool) ([]notificationModel.Notification, error) {
	var notifications []notificationModel.Notification
	q := s.DB.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	err := q.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// MarkRead sets the read timestamp of one notification. The transition is
// unread -> read exactly once: re-marking an already-read notification is a
// no-op and the original timestamp is kept.
func (s *Service) MarkRead(notificationID, userID uint) (*notificationModel.Notification, error) {
	var n notificationModel.Notification
	if err := s.DB.First(&n, notificationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: notification %d", apperr.NotFound, notificationID)
		}
		return nil, err
	}

	if n.UserID != userID {
		return nil, fmt.Errorf("%w: notification belongs to another user", apperr.Unauthorized)
	}

	if n.ReadAt != nil {
		return &n, nil
	}

	readAt := time.Now()
	if err := s.DB.Model(&n).Update("read_at", readAt).Error; err != nil {
		return nil, err
	}
	n.ReadAt = &readAt
	return &n, nil
}

// MarkAllRead marks every unread notification owned by the user and returns
// how many rows changed.
func (s *Service) MarkAllRead(userID uint) (int64, error) {
	res := s.DB.Model(&notificationModel.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now())
	return res.RowsAffected, res.Error
}

// Delete removes a notification its owner no longer wants.
func (s *Service) Delete(notificationID, userID uint) error {
	var n notificationModel.Notification
	if err := s.DB.First(&n, notificationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: notification %d", apperr.NotFound, notificationID)
		}
		return err
	}

	if n.UserID != userID {
		return fmt.Errorf("%w: notification belongs to another user", apperr.Unauthorized)
	}

	return s.DB.Delete(&n).Error
}
