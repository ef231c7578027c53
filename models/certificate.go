// models/certificate.go
package models

import (
	"strings"
	"time"
)

type CertificateCategory string

const (
	CertParticipation CertificateCategory = "participation"
	CertWinner        CertificateCategory = "winner"
	CertRunnerUp      CertificateCategory = "runner-up"
	CertJury          CertificateCategory = "jury"
	CertMentor        CertificateCategory = "mentor"
	CertSpoc          CertificateCategory = "spoc"
	CertCustom        CertificateCategory = "custom"
)

func ValidCertificateCategory(c CertificateCategory) bool {
	switch c {
	case CertParticipation, CertWinner, CertRunnerUp, CertJury, CertMentor, CertSpoc, CertCustom:
		return true
	}
	return false
}

// CertificateRecord is one issuance event. Re-issuing to the same user makes
// a new record with a new serial; records are never deduplicated.
type CertificateRecord struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	UserID    uint                `gorm:"not null;index" json:"user_id"`
	TeamID    *uint               `gorm:"index" json:"team_id,omitempty"`
	Category  CertificateCategory `gorm:"not null;size:20" json:"category"`
	Serial    string              `gorm:"uniqueIndex;not null;size:40" json:"serial"`
	PDFURL    string              `gorm:"not null;size:500" json:"pdf_url"`
	IssuedAt  time.Time           `json:"issued_at"`
	CreatedAt time.Time           `json:"created_at"`
}

func (CertificateRecord) TableName() string {
	return "certificate_records"
}

func (r *CertificateRecord) Validate() error {
	if r.UserID == 0 {
		return invalid("user_id", "user is required")
	}
	if !ValidCertificateCategory(r.Category) {
		return invalid("category", "unknown certificate category")
	}
	if strings.TrimSpace(r.PDFURL) == "" {
		return invalid("pdf_url", "artifact reference is required")
	}
	return nil
}

// CertificateConfig is the singleton template the admin edits and publishes.
type CertificateConfig struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null;size:200;default:'Certificate of Appreciation'" json:"title"`
	Subtitle        string    `gorm:"size:200" json:"subtitle"`
	EventName       string    `gorm:"not null;size:200" json:"event_name"`
	Description     string    `gorm:"size:500" json:"description"`
	BackgroundImage string    `gorm:"size:500" json:"background_image,omitempty"`
	Signature1Label string    `gorm:"size:100" json:"signature1_label"`
	Signature1URL   string    `gorm:"size:500" json:"signature1_url,omitempty"`
	Signature2Label string    `gorm:"size:100" json:"signature2_label"`
	Signature2URL   string    `gorm:"size:500" json:"signature2_url,omitempty"`
	IsPublished     bool      `gorm:"default:false" json:"is_published"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (CertificateConfig) TableName() string {
	return "certificate_configs"
}

func (c *CertificateConfig) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return invalid("title", "title is required")
	}
	if strings.TrimSpace(c.EventName) == "" {
		return invalid("event_name", "event name is required")
	}
	return nil
}
