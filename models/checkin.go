package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckIn is an append-only shift-start record.
type CheckIn struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	Date      string    `gorm:"type:varchar(10);index;not null" json:"date"`
	Shift     string    `gorm:"not null" json:"shift"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (c *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
