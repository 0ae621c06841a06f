package auth

import (
	"github.com/raisul516/ironi-backend/internal/users"
	"github.com/raisul516/ironi-backend/pkg/types"
)

// RegisterRequest captures the payload for onboarding a new customer.
type RegisterRequest struct {
	Name     string        `json:"name" validate:"required"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=6"`
	Phone    string        `json:"phone" validate:"required,bd_phone"`
	Address  types.Address `json:"address" validate:"required"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the token and user produced by register/login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name    string        `json:"name" validate:"required"`
	Phone   string        `json:"phone" validate:"required,bd_phone"`
	Address types.Address `json:"address" validate:"required"`
}
