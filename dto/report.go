package dto

type ReportQuery struct {
	From string `form:"from" json:"from" binding:"omitempty,isodate"`
	To   string `form:"to" json:"to" binding:"omitempty,isodate"`
}

type UserCompliance struct {
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Percentage int    `json:"percentage"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Report is the aggregate over a set of checklists.
type Report struct {
	From              string           `json:"from,omitempty"`
	To                string           `json:"to,omitempty"`
	TotalTasks        int              `json:"totalTasks"`
	AverageCompliance int              `json:"averageCompliance"`
	Compliance        []UserCompliance `json:"compliance"`
	ChecklistStatus   []StatusCount    `json:"checklistStatus"`
	TaskStatus        []StatusCount    `json:"taskStatus"`
}
