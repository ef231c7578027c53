// models/notification.go
package models

import (
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationTeam    NotificationType = "team"
	NotificationSystem  NotificationType = "system"
)

// Notification is one row per recipient. Broadcasts fan out into individual
// rows at creation time so read state and soft deletes stay per-user.
type Notification struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	RecipientID   uint             `gorm:"not null;index:idx_notifications_recipient" json:"recipient_id"`
	Title         string           `gorm:"not null;size:200" json:"title"`
	Message       string           `gorm:"not null;size:2000" json:"message"`
	Type          NotificationType `gorm:"not null;default:'info';size:20" json:"type"`
	TriggeredBy   uint             `gorm:"not null" json:"triggered_by"`
	RelatedTeamID *uint            `gorm:"index" json:"related_team_id,omitempty"`
	IsRead        bool             `gorm:"default:false;index:idx_notifications_recipient" json:"is_read"`
	ReadAt        *time.Time       `json:"read_at,omitempty"`
	IsDeleted     bool             `gorm:"default:false" json:"-"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) Validate() error {
	if n.RecipientID == 0 {
		return invalid("recipient_id", "recipient is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return invalid("title", "title is required")
	}
	if strings.TrimSpace(n.Message) == "" {
		return invalid("message", "message is required")
	}
	switch n.Type {
	case NotificationInfo, NotificationWarning, NotificationSuccess, NotificationTeam, NotificationSystem:
	default:
		return invalid("type", "type must be one of info, warning, success, team, system")
	}
	return nil
}
