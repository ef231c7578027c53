// models/user.go
package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSpoc    Role = "spoc"
	RoleMentor  Role = "mentor"
	RoleStudent Role = "student"
)

// ParseRole returns the Role for s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleSpoc, RoleMentor, RoleStudent:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null;size:100" json:"name"`
	Email    string `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"not null;default:'student';size:20;index" json:"role"`

	// Institute affiliation
	InstituteID   string `gorm:"size:50;index" json:"institute_id"`
	InstituteName string `gorm:"size:200" json:"institute_name"`
	InstituteCode string `gorm:"size:20" json:"institute_code"`
	District      string `gorm:"size:100" json:"district,omitempty"`
	State         string `gorm:"size:100" json:"state,omitempty"`

	// Team membership (at most one team at a time)
	TeamID *uint `gorm:"index" json:"team_id,omitempty"`

	// Mentor fields
	AssignedTeams []Team `gorm:"many2many:mentor_assignments" json:"assigned_teams,omitempty"`
	Expertise     string `gorm:"size:500" json:"expertise,omitempty"`
	Phone         string `gorm:"size:20" json:"phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Validate checks required fields and enum membership before a write.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return invalid("name", "name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return invalid("email", "email is required")
	}
	if !strings.Contains(u.Email, "@") {
		return invalid("email", "email is not valid")
	}
	if _, ok := ParseRole(string(u.Role)); !ok {
		return invalid("role", "role must be one of admin, spoc, mentor, student")
	}
	return nil
}
