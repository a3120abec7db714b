package dto

import (
	"time"

	"karkandu/internal/httpapi/models"
)

// RegisterDTO creates a reader account.
type RegisterDTO struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Language string `json:"language" binding:"omitempty,oneof=en ta"`
}

// LoginDTO authenticates by email.
type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Bio:       user.Bio,
		Avatar:    user.Avatar,
		Language:  user.Language,
		CreatedAt: user.CreatedAt,
	}
}

// AuthResponse returns the signed token alongside the user; the same token
// also travels as an httpOnly cookie.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileDTO carries profile edits.
type UpdateProfileDTO struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
	Language *string `json:"language" binding:"omitempty,oneof=en ta"`
}
