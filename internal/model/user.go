package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the platform. Progress records reference users by ID
// only; the progress subsystem performs no authentication logic itself.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Image        *string   `json:"image,omitempty"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the payload for profile updates. All fields are
// optional; absent fields are left unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Bio   *string `json:"bio" binding:"omitempty,max=1000"`
	Image *string `json:"image" binding:"omitempty,max=500"`
}
