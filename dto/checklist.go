package dto

import "restaurante360/models"

type AssignChecklistRequest struct {
	ProcessID  string `json:"processId" binding:"required"`
	AssignedTo string `json:"assignedTo" binding:"required"`
	Date       string `json:"date" binding:"required,isodate"`
	Shift      string `json:"shift" binding:"required,shift"`
}

type OneOffTaskRequest struct {
	Title         string `json:"title" binding:"required,min=3,max=200"`
	Description   string `json:"description" binding:"omitempty,max=2000"`
	AssignedTo    string `json:"assignedTo" binding:"required"`
	Date          string `json:"date" binding:"required,isodate"`
	Shift         string `json:"shift" binding:"required,shift"`
	RequiresPhoto bool   `json:"requiresPhoto"`
}

type ChecklistFilter struct {
	Status     string `form:"status" json:"status" binding:"omitempty,oneof=open in_progress completed"`
	Date       string `form:"date" json:"date" binding:"omitempty,isodate"`
	AssignedTo string `form:"assignedTo" json:"assignedTo"`
	Shift      string `form:"shift" json:"shift" binding:"omitempty,shift"`
	Page
}

type MyTasksQuery struct {
	Date string `form:"date" json:"date" binding:"omitempty,isodate"`
}

type CompleteTaskRequest struct {
	PhotoURLs       []string `json:"photoUrls" binding:"omitempty,dive,url"`
	Feedback        string   `json:"feedback" binding:"omitempty,max=2000"`
	ExpectedVersion *int     `json:"expectedVersion" binding:"omitempty,min=1"`
}

type NotApplicableRequest struct {
	Feedback        string `json:"feedback" binding:"omitempty,max=2000"`
	ExpectedVersion *int   `json:"expectedVersion" binding:"omitempty,min=1"`
}

// ChecklistResponse adds the derived progress to a checklist.
type ChecklistResponse struct {
	models.Checklist
	Progress float64 `json:"progress"`
}

func NewChecklistResponse(c models.Checklist) ChecklistResponse {
	return ChecklistResponse{Checklist: c, Progress: c.Progress()}
}

func NewChecklistResponses(list []models.Checklist) []ChecklistResponse {
	out := make([]ChecklistResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewChecklistResponse(c))
	}
	return out
}

// MyTask is a task flattened with its parent checklist context.
type MyTask struct {
	models.TaskInstance
	ProcessName     string                 `json:"processName"`
	Date            string                 `json:"date"`
	Shift           string                 `json:"shift"`
	ChecklistStatus models.ChecklistStatus `json:"checklistStatus"`
	ChecklistVer    int                    `json:"checklistVersion"`
}

type TaskTransitionResponse struct {
	Checklist ChecklistResponse   `json:"checklist"`
	Task      models.TaskInstance `json:"task"`
}
