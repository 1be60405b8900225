package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChecklistStatus string

const (
	ChecklistOpen       ChecklistStatus = "open"
	ChecklistInProgress ChecklistStatus = "in_progress"
	ChecklistCompleted  ChecklistStatus = "completed"
)

type TaskStatus string

const (
	TaskPending       TaskStatus = "pending"
	TaskDone          TaskStatus = "done"
	TaskNotApplicable TaskStatus = "not_applicable"
)

// TaskInstance is embedded in its checklist. Title, description and the photo
// flag are copied from the template when the checklist is created and are
// never re-synced.
type TaskInstance struct {
	ID                 string     `json:"id"`
	ChecklistID        string     `json:"checklistId"`
	ActivityTemplateID string     `json:"activityTemplateId"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	RequiresPhoto      bool       `json:"requiresPhoto"`
	Status             TaskStatus `json:"status"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CompletedBy        string     `json:"completedBy,omitempty"`
	PhotoURLs          []string   `json:"photoUrls,omitempty"`
	Feedback           string     `json:"feedback,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Checklist is a dated, shift-scoped assignment of tasks to one collaborator.
// Version increases on every task write and guards the read-modify-write of
// the embedded task array.
type Checklist struct {
	ID          string                            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Date        string                            `gorm:"type:varchar(10);index;not null" json:"date"`
	Shift       string                            `gorm:"not null" json:"shift"`
	AssignedTo  string                            `gorm:"type:varchar(36);index;not null" json:"assignedTo"`
	ProcessID   string                            `gorm:"type:varchar(36);index" json:"processId,omitempty"`
	ProcessName string                            `json:"processName,omitempty"`
	Status      ChecklistStatus                   `gorm:"type:varchar(16);index;not null" json:"status"`
	Tasks       datatypes.JSONSlice[TaskInstance] `json:"tasks"`
	CreatedBy   string                            `gorm:"type:varchar(36);index;not null" json:"createdBy"`
	Version     int                               `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time                         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                         `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (c *Checklist) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = ChecklistOpen
	}
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}

// FindTask returns the index of the task with the given id, or -1.
func (c *Checklist) FindTask(taskID string) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func (c *Checklist) Progress() float64 {
	return Progress(c.Tasks)
}
