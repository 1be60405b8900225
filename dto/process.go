package dto

import "restaurante360/models"

type CreateProcessRequest struct {
	Name        string   `json:"name" binding:"required,min=3,max=200"`
	Description string   `json:"description" binding:"required,min=10"`
	ActivityIDs []string `json:"activityIds" binding:"required,min=1,dive,required"`
}

type UpdateProcessRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=3,max=200"`
	Description *string  `json:"description" binding:"omitempty,min=10"`
	ActivityIDs []string `json:"activityIds" binding:"omitempty,min=1,dive,required"`
}

type RoutineTask struct {
	Title         string `json:"title" binding:"required,min=3,max=200"`
	RequiresPhoto bool   `json:"requiresPhoto"`
}

// CreateRoutineRequest creates the process and one template per task in a
// single transaction.
type CreateRoutineRequest struct {
	Name        string        `json:"name" binding:"required,min=3,max=200"`
	Description string        `json:"description" binding:"required,min=10"`
	Tasks       []RoutineTask `json:"tasks" binding:"required,min=1,dive"`
}

type RoutineResponse struct {
	Process    models.Process            `json:"process"`
	Activities []models.ActivityTemplate `json:"activities"`
}
