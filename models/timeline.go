// models/timeline.go - Timeline events and the countdown singleton
package models

import (
	"strings"
	"time"
)

type EventStatus string

const (
	EventCompleted EventStatus = "completed"
	EventActive    EventStatus = "active"
	EventUpcoming  EventStatus = "upcoming"
)

type TimelineEvent struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"not null;size:200" json:"title"`
	Date        string      `gorm:"not null;size:50" json:"date"`
	Time        string      `gorm:"not null;size:50" json:"time"`
	Description string      `gorm:"not null;size:1000" json:"description"`
	Status      EventStatus `gorm:"not null;default:'upcoming';size:20" json:"status"`
	Order       int         `gorm:"column:display_order;default:0;index" json:"order"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (TimelineEvent) TableName() string {
	return "timeline_events"
}

func (e *TimelineEvent) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return invalid("title", "title is required")
	}
	if strings.TrimSpace(e.Date) == "" {
		return invalid("date", "date is required")
	}
	if strings.TrimSpace(e.Time) == "" {
		return invalid("time", "time is required")
	}
	if strings.TrimSpace(e.Description) == "" {
		return invalid("description", "description is required")
	}
	switch e.Status {
	case EventCompleted, EventActive, EventUpcoming:
	default:
		return invalid("status", "status must be one of completed, active, upcoming")
	}
	return nil
}

type Countdown struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null;size:200;default:'Event Starts In'" json:"title"`
	TargetDate time.Time `gorm:"not null" json:"target_date"`
	IsActive   bool      `gorm:"default:false" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Countdown) TableName() string {
	return "countdowns"
}

func (c *Countdown) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return invalid("title", "title is required")
	}
	if c.TargetDate.IsZero() {
		return invalid("target_date", "target date is required")
	}
	return nil
}
