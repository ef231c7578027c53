// models/rubric.go
package models

import (
	"strings"
	"time"
)

// WeightTolerance is the slack allowed when active rubric weights are
// reconciled against 1.0.
const WeightTolerance = 0.01

type Rubric struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:100" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	MaxScore    int       `gorm:"not null;default:10" json:"max_score"`
	Weight      float64   `gorm:"not null" json:"weight"`
	Order       int       `gorm:"column:display_order;default:0;index" json:"order"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Rubric) TableName() string {
	return "rubrics"
}

func (r *Rubric) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return invalid("title", "rubric title is required")
	}
	if len(r.Title) > 100 {
		return invalid("title", "title cannot exceed 100 characters")
	}
	if len(r.Description) > 500 {
		return invalid("description", "description cannot exceed 500 characters")
	}
	if r.MaxScore < 1 || r.MaxScore > 100 {
		return invalid("max_score", "max score must be between 1 and 100")
	}
	if r.Weight < 0 || r.Weight > 1 {
		return invalid("weight", "weight must be between 0 and 1")
	}
	return nil
}
