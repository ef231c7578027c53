// services/notification_service.go - Per-user notification fan-out
package services

import (
	"hacksphere/models"
	"hacksphere/store"
)

type NotificationService struct {
	store store.Store
}

func NewNotificationService(s store.Store) *NotificationService {
	return &NotificationService{store: s}
}

type CreateNotificationInput struct {
	Title      string                  `json:"title"`
	Message    string                  `json:"message"`
	Type       models.NotificationType `json:"type"`
	Recipients []uint                  `json:"recipients"`
	// Role broadcasts to every user with that role; ignored when
	// Recipients is set.
	Role models.Role `json:"role"`
}

// Create fans the notification out into one row per recipient so read and
// delete state stay per-user.
func (s *NotificationService) Create(triggeredBy uint, in CreateNotificationInput) (int, error) {
	recipients := in.Recipients
	if len(recipients) == 0 && in.Role != "" {
		users, _, err := s.store.Users().List(store.UserFilter{Role: in.Role})
		if err != nil {
			return 0, err
		}
		for _, u := range users {
			recipients = append(recipients, u.ID)
		}
	}
	if len(recipients) == 0 {
		return 0, &models.ValidationError{Field: "recipients", Reason: "at least one recipient or a role is required"}
	}

	notifType := in.Type
	if notifType == "" {
		notifType = models.NotificationInfo
	}

	batch := make([]models.Notification, 0, len(recipients))
	for _, id := range recipients {
		n := models.Notification{
			RecipientID: id,
			Title:       in.Title,
			Message:     in.Message,
			Type:        notifType,
			TriggeredBy: triggeredBy,
		}
		if err := n.Validate(); err != nil {
			return 0, err
		}
		batch = append(batch, n)
	}

	if err := s.store.Notifications().CreateBatch(batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	return s.store.Notifications().ListForUser(userID)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.store.Notifications().UnreadCount(userID)
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.store.Notifications().MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.store.Notifications().MarkAllRead(userID)
}

func (s *NotificationService) SoftDelete(id uint) error {
	return s.store.Notifications().SoftDelete(id)
}
