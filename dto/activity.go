package dto

type CreateActivityRequest struct {
	Title         string `json:"title" binding:"required,min=3,max=200"`
	Description   string `json:"description" binding:"required,min=10"`
	Category      string `json:"category" binding:"required,category"`
	Frequency     string `json:"frequency" binding:"required,frequency"`
	IsRecurring   bool   `json:"isRecurring"`
	RequiresPhoto bool   `json:"requiresPhoto"`
}

// UpdateActivityRequest is a merge update; nil fields are left untouched.
type UpdateActivityRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=3,max=200"`
	Description   *string `json:"description" binding:"omitempty,min=10"`
	Category      *string `json:"category" binding:"omitempty,category"`
	Frequency     *string `json:"frequency" binding:"omitempty,frequency"`
	IsRecurring   *bool   `json:"isRecurring"`
	RequiresPhoto *bool   `json:"requiresPhoto"`
}

type ActivityFilter struct {
	Status   string `form:"status" json:"status" binding:"omitempty,oneof=active inactive"`
	Category string `form:"category" json:"category" binding:"omitempty,category"`
	Query    string `form:"q" json:"q"`
}
