// models/problem.go
package models

import (
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type ProblemType string

const (
	ProblemSoftware ProblemType = "software"
	ProblemHardware ProblemType = "hardware"
	ProblemBoth     ProblemType = "both"
)

// Problem is a statement from the event catalog. Teams pick exactly one;
// TeamCount is annotated at query time, never stored.
type Problem struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"not null;size:200" json:"title"`
	Description string      `gorm:"not null;type:text" json:"description"`
	Category    string      `gorm:"not null;size:100;index" json:"category"`
	Difficulty  Difficulty  `gorm:"not null;default:'medium';size:20" json:"difficulty"`
	Type        ProblemType `gorm:"not null;default:'both';size:20" json:"type"`
	Tags        string      `gorm:"size:500" json:"tags,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	TeamCount int `gorm:"-" json:"team_count"`
}

func (Problem) TableName() string {
	return "problems"
}

func (p *Problem) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid("title", "title is required")
	}
	if len(p.Title) > 200 {
		return invalid("title", "title cannot exceed 200 characters")
	}
	if strings.TrimSpace(p.Description) == "" {
		return invalid("description", "description is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return invalid("category", "category is required")
	}
	switch p.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return invalid("difficulty", "difficulty must be one of easy, medium, hard")
	}
	switch p.Type {
	case ProblemSoftware, ProblemHardware, ProblemBoth:
	default:
		return invalid("type", "type must be one of software, hardware, both")
	}
	return nil
}

// Setting is an event-level key/value flag, e.g. whether the problem
// selection window is open.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null;size:100" json:"key"`
	Value     string    `gorm:"not null;size:500" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
