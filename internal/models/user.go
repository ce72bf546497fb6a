package models

import "time"

// User is the authentication identity: email plus hashed password. The
// social identity lives in Profile; the two are created together at
// registration.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterRequest defines the request body for account registration.
// DisplayName is optional; it defaults to the local part of the email.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"displayName" validate:"omitempty,min=2,max=50"`
}

// ChangePasswordRequest defines the request body for credential rotation.
// The current password must be re-proven even on an authenticated session.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// LoginRequest defines the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token       string `json:"token"`
	UserID      uint   `json:"userId"`
	ProfileID   uint   `json:"profileId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
