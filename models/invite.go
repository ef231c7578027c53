// models/invite.go - Team invites and join requests
package models

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

func validRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected:
		return true
	}
	return false
}

// TeamInvite is leader-to-user: the team asks the user in.
type TeamInvite struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	TeamID      uint          `gorm:"not null;index:idx_invites_team_status" json:"team_id"`
	Team        *Team         `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	FromUserID  uint          `gorm:"not null;index" json:"from_user_id"`
	ToUserID    uint          `gorm:"not null;index:idx_invites_to_status" json:"to_user_id"`
	Status      RequestStatus `gorm:"not null;default:'pending';size:20;index:idx_invites_team_status;index:idx_invites_to_status" json:"status"`
	InstituteID string        `gorm:"not null;size:50" json:"institute_id"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (TeamInvite) TableName() string {
	return "team_invites"
}

func (i *TeamInvite) Validate() error {
	if i.TeamID == 0 {
		return invalid("team_id", "team is required")
	}
	if i.FromUserID == 0 {
		return invalid("from_user_id", "sender is required")
	}
	if i.ToUserID == 0 {
		return invalid("to_user_id", "recipient is required")
	}
	if !validRequestStatus(i.Status) {
		return invalid("status", "status must be one of pending, accepted, rejected")
	}
	return nil
}

// TeamJoinRequest is user-to-team: the user asks the team in. At most one
// pending request per (team, user) pair; the partial unique index in
// database/migrate.go makes concurrent duplicates lose at the storage layer.
type TeamJoinRequest struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	ToTeamID   uint          `gorm:"not null;index:idx_join_requests_team_status" json:"to_team_id"`
	Team       *Team         `gorm:"foreignKey:ToTeamID" json:"team,omitempty"`
	FromUserID uint          `gorm:"not null;index:idx_join_requests_from_status" json:"from_user_id"`
	FromUser   *User         `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	Status     RequestStatus `gorm:"not null;default:'pending';size:20;index:idx_join_requests_team_status;index:idx_join_requests_from_status" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (TeamJoinRequest) TableName() string {
	return "team_join_requests"
}

func (r *TeamJoinRequest) Validate() error {
	if r.ToTeamID == 0 {
		return invalid("to_team_id", "team is required")
	}
	if r.FromUserID == 0 {
		return invalid("from_user_id", "requesting user is required")
	}
	if !validRequestStatus(r.Status) {
		return invalid("status", "status must be one of pending, accepted, rejected")
	}
	return nil
}
