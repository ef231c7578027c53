// models/institute.go
package models

import (
	"strings"
	"time"
)

type Institute struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	Code      string    `gorm:"uniqueIndex;not null;size:20" json:"code"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Institute) TableName() string {
	return "institutes"
}

func (i *Institute) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return invalid("name", "institute name is required")
	}
	if strings.TrimSpace(i.Code) == "" {
		return invalid("code", "institute code is required")
	}
	return nil
}

// NormalizeCode uppercases the code the way the registration forms expect it.
func (i *Institute) NormalizeCode() {
	i.Code = strings.ToUpper(strings.TrimSpace(i.Code))
}
