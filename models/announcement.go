// models/announcement.go
package models

import (
	"strings"
	"time"
)

type AnnouncementType string

const (
	AnnouncementInfo    AnnouncementType = "info"
	AnnouncementWarning AnnouncementType = "warning"
	AnnouncementUrgent  AnnouncementType = "urgent"
	AnnouncementGeneral AnnouncementType = "general"
)

type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceInstitute Audience = "institute"
	AudienceTeam      Audience = "team"
)

type Announcement struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	Title             string           `gorm:"not null;size:200" json:"title"`
	Message           string           `gorm:"not null;size:2000" json:"message"`
	Type              AnnouncementType `gorm:"not null;default:'general';size:20" json:"type"`
	Audience          Audience         `gorm:"not null;default:'all';size:20;index" json:"audience"`
	TargetInstituteID string           `gorm:"size:50;index" json:"target_institute_id,omitempty"`
	TargetTeamID      *uint            `gorm:"index" json:"target_team_id,omitempty"`
	CreatedBy         uint             `gorm:"not null;index" json:"created_by"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	// Filled at read time for the requesting user, never persisted.
	IsRead bool `gorm:"-" json:"is_read"`
}

func (Announcement) TableName() string {
	return "announcements"
}

func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("title", "title is required")
	}
	if len(a.Title) > 200 {
		return invalid("title", "title cannot exceed 200 characters")
	}
	if strings.TrimSpace(a.Message) == "" {
		return invalid("message", "message is required")
	}
	if len(a.Message) > 2000 {
		return invalid("message", "message cannot exceed 2000 characters")
	}
	switch a.Type {
	case AnnouncementInfo, AnnouncementWarning, AnnouncementUrgent, AnnouncementGeneral:
	default:
		return invalid("type", "type must be one of info, warning, urgent, general")
	}
	switch a.Audience {
	case AudienceAll:
	case AudienceInstitute:
		if a.TargetInstituteID == "" {
			return invalid("target_institute_id", "institute audience requires a target institute")
		}
	case AudienceTeam:
		if a.TargetTeamID == nil {
			return invalid("target_team_id", "team audience requires a target team")
		}
	default:
		return invalid("audience", "audience must be one of all, institute, team")
	}
	return nil
}

// VisibleTo reports whether the announcement reaches a viewer with the given
// institute and team. Anonymous viewers (empty institute, nil team) see only
// the "all" audience.
func (a *Announcement) VisibleTo(instituteID string, teamID *uint) bool {
	switch a.Audience {
	case AudienceAll:
		return true
	case AudienceInstitute:
		return instituteID != "" && a.TargetInstituteID == instituteID
	case AudienceTeam:
		return teamID != nil && a.TargetTeamID != nil && *a.TargetTeamID == *teamID
	}
	return false
}

// AnnouncementRead is the per-(announcement, user) read marker. The compound
// unique index keeps repeated mark-read calls down to a single row.
type AnnouncementRead struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	AnnouncementID uint       `gorm:"not null;uniqueIndex:idx_announcement_reads_pair;index" json:"announcement_id"`
	UserID         uint       `gorm:"not null;uniqueIndex:idx_announcement_reads_pair;index" json:"user_id"`
	IsRead         bool       `gorm:"default:false" json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (AnnouncementRead) TableName() string {
	return "announcement_reads"
}
