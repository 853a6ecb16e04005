package models

import (
	"time"

	"github.com/google/uuid"
)

// Attempt types recorded in password_reset_attempts.
const (
	AttemptSendCode      = "SendCode"
	AttemptVerifyCode    = "VerifyCode"
	AttemptResetPassword = "ResetPassword"
)

// PasswordResetToken is a 6-digit code mailed to an account owner.
// A token is valid while it is unused and ExpiryDate is in the future.
type PasswordResetToken struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email      string    `gorm:"not null;size:255;index" json:"email"`
	Token      string    `gorm:"not null;size:6" json:"-"`
	ExpiryDate time.Time `gorm:"not null" json:"expiryDate"`
	IsUsed     bool      `gorm:"not null;default:false" json:"isUsed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IsValid reports whether the token can still be redeemed at now.
func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return !t.IsUsed && t.ExpiryDate.After(now)
}

// PasswordResetAttempt is an append-only audit row used for rate limiting.
type PasswordResetAttempt struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"size:255;index:idx_reset_attempts_email" json:"email"`
	IPAddress    string    `gorm:"size:64;index:idx_reset_attempts_ip" json:"ipAddress"`
	AttemptTime  time.Time `gorm:"not null;index" json:"attemptTime"`
	IsSuccessful bool      `gorm:"not null" json:"isSuccessful"`
	AttemptType  string    `gorm:"size:20;not null" json:"attemptType"`
}
