package dto

import "github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"

type RegisterRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	MobileNumber string `json:"mobileNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type SendPasswordResetEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	Email     string `json:"email" validate:"required,email"`
	ResetCode string `json:"resetCode" validate:"required,len=6,numeric"`
}

type ResetPasswordWithTokenRequest struct {
	Email       string `json:"email" validate:"required,email"`
	ResetCode   string `json:"resetCode" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// AuthResponse is returned by Register and Login. Exactly one of User and
// Doctor is set.
type AuthResponse struct {
	Token  string         `json:"token"`
	User   *models.User   `json:"user,omitempty"`
	Doctor *models.Doctor `json:"doctor,omitempty"`
}
