// models/password_reset.go
package models

import (
	"strings"
	"time"
)

// ResetStatus is distinct from the invite RequestStatus: a processed
// reset is "approved", not "accepted".
type ResetStatus string

const (
	ResetPending  ResetStatus = "pending"
	ResetApproved ResetStatus = "approved"
	ResetRejected ResetStatus = "rejected"
)

func validResetStatus(s ResetStatus) bool {
	switch s {
	case ResetPending, ResetApproved, ResetRejected:
		return true
	}
	return false
}

// PasswordResetRequest is reviewed by an admin rather than resolved by an
// emailed token. ProcessedBy/ProcessedAt audit who acted on it.
type PasswordResetRequest struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	Email           string      `gorm:"not null;size:255" json:"email"`
	UserName        string      `gorm:"not null;size:100" json:"user_name"`
	UserPhone       string      `gorm:"size:20" json:"user_phone,omitempty"`
	Status          ResetStatus `gorm:"not null;default:'pending';size:20;index" json:"status"`
	RequestedAt     time.Time   `json:"requested_at"`
	ProcessedAt     *time.Time  `json:"processed_at,omitempty"`
	ProcessedBy     *uint       `json:"processed_by,omitempty"`
	RejectionReason string      `gorm:"size:500" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (PasswordResetRequest) TableName() string {
	return "password_reset_requests"
}

func (r *PasswordResetRequest) Validate() error {
	if r.UserID == 0 {
		return invalid("user_id", "user is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return invalid("email", "email is required")
	}
	if strings.TrimSpace(r.UserName) == "" {
		return invalid("user_name", "user name is required")
	}
	if !validResetStatus(r.Status) {
		return invalid("status", "status must be one of pending, approved, rejected")
	}
	return nil
}
