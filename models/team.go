// models/team.go
package models

import (
	"strings"
	"time"
)

type TeamStatus string

const (
	TeamStatusPending  TeamStatus = "pending"
	TeamStatusApproved TeamStatus = "approved"
	TeamStatusRejected TeamStatus = "rejected"
)

// MaxTeamSize caps approved members, leader included.
const MaxTeamSize = 6

type Team struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Name     string     `gorm:"uniqueIndex;not null;size:100" json:"name"`
	TeamCode string     `gorm:"uniqueIndex;size:12" json:"team_code"`
	LeaderID uint       `gorm:"not null;index" json:"leader_id"`
	Leader   *User      `gorm:"foreignKey:LeaderID" json:"leader,omitempty"`
	Members  []User     `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Status   TeamStatus `gorm:"not null;default:'pending';size:20;index" json:"status"`

	// Selected problem statement, nil until the team picks one.
	ProblemID *uint `gorm:"index" json:"problem_id,omitempty"`

	InstituteID   string `gorm:"size:50;index" json:"institute_id"`
	InstituteCode string `gorm:"not null;size:20" json:"institute_code"`
	InstituteName string `gorm:"not null;size:200" json:"institute_name"`

	MentorID    *uint  `gorm:"index" json:"mentor_id,omitempty"`
	MentorName  string `gorm:"size:100" json:"mentor_name"`
	MentorEmail string `gorm:"size:255" json:"mentor_email"`
	SpocID      *uint  `gorm:"index" json:"spoc_id,omitempty"`
	SpocName    string `gorm:"size:100" json:"spoc_name"`
	SpocEmail   string `gorm:"size:255" json:"spoc_email"`

	Progress        int        `gorm:"default:0" json:"progress"`
	SpocNotes       string     `gorm:"type:text" json:"spoc_notes,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`

	PendingMembers []TeamPendingMember `gorm:"foreignKey:TeamID" json:"pending_members,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamPendingMember is a member named at registration time who has not
// created an account yet. Rows are consumed as the named users sign up.
type TeamPendingMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	Email     string    `gorm:"not null;size:255" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (TeamPendingMember) TableName() string {
	return "team_pending_members"
}

func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name", "team name is required")
	}
	if t.LeaderID == 0 {
		return invalid("leader_id", "team leader is required")
	}
	if strings.TrimSpace(t.InstituteCode) == "" {
		return invalid("institute_code", "institute code is required")
	}
	if strings.TrimSpace(t.InstituteName) == "" {
		return invalid("institute_name", "institute name is required")
	}
	switch t.Status {
	case TeamStatusPending, TeamStatusApproved, TeamStatusRejected:
	default:
		return invalid("status", "status must be one of pending, approved, rejected")
	}
	return nil
}
