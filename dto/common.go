package dto

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is the page/limit pair accepted by list endpoints.
type Page struct {
	Page  int `form:"page" json:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" json:"limit" binding:"omitempty,min=1"`
}

// Normalize fills defaults and clamps the limit.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type ActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
