package models

import (
	"time"

	"restaurante360/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityTemplate is the reusable definition of a task authored by a manager.
type ActivityTemplate struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	Category      string    `gorm:"not null" json:"category"`
	Frequency     string    `gorm:"not null" json:"frequency"`
	IsRecurring   bool      `json:"isRecurring"`
	RequiresPhoto bool      `json:"requiresPhoto"`
	Status        string    `gorm:"not null;index" json:"status"`
	CreatedBy     string    `gorm:"type:varchar(36);index;not null" json:"createdBy"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (a *ActivityTemplate) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = constants.ActivityStatusActive
	}
	return nil
}

func (a *ActivityTemplate) IsActive() bool {
	return a.Status == constants.ActivityStatusActive
}
