package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Process (a routine in the UI) is an ordered bundle of activity templates.
type Process struct {
	ID          string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string                      `gorm:"not null" json:"name"`
	Description string                      `json:"description"`
	ActivityIDs datatypes.JSONSlice[string] `json:"activityIds"`
	IsActive    bool                        `gorm:"not null;default:true" json:"isActive"`
	CreatedBy   string                      `gorm:"type:varchar(36);index;not null" json:"createdBy"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Process) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
