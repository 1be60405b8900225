package dto

type ManagerDashboard struct {
	Date             string              `json:"date"`
	ChecklistsToday  int                 `json:"checklistsToday"`
	OverdueTasks     int                 `json:"overdueTasks"`
	CheckinsToday    int                 `json:"checkinsToday"`
	StatusChart      []StatusCount       `json:"statusChart"`
	RecentChecklists []ChecklistResponse `json:"recentChecklists"`
}

type CollaboratorDashboard struct {
	Date         string   `json:"date"`
	CheckedIn    bool     `json:"checkedIn"`
	TodayTasks   []MyTask `json:"todayTasks"`
	PendingCount int      `json:"pendingCount"`
	DoneCount    int      `json:"doneCount"`
}

type DeviceTokenRequest struct {
	Token string `json:"token" binding:"required,min=10"`
}
