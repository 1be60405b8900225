package dto

type CheckInRequest struct {
	Shift string `json:"shift" binding:"omitempty,shift"`
}

type CheckInFilter struct {
	Date   string `form:"date" json:"date" binding:"omitempty,isodate"`
	UserID string `form:"userId" json:"userId"`
}

type CheckInResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Date      string `json:"date"`
	Shift     string `json:"shift"`
	CreatedAt string `json:"createdAt"`
}
