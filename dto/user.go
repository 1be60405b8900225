package dto

import (
	"time"

	"restaurante360/models"
)

// UserResponse is the public view of a user. The password hash never leaves
// the service layer.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=120"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
	Role     string `json:"role" binding:"required,role"`
}

// UpdateUserRequest merges non-empty fields into the stored user.
type UpdateUserRequest struct {
	Name      string `json:"name" binding:"omitempty,min=3,max=120"`
	Role      string `json:"role" binding:"omitempty,role"`
	AvatarURL string `json:"avatarUrl" binding:"omitempty,url"`
}

type UserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type UserFilter struct {
	Role   string `form:"role" json:"role" binding:"omitempty,role"`
	Active *bool  `form:"active" json:"active"`
	Query  string `form:"q" json:"q"`
}
