package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser   = "user"
	RoleDoctor = "doctor"
	RoleAdmin  = "admin"
)

// User is a patient or an administrator. Doctors live in their own table.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName     string    `gorm:"size:255" json:"fullName"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	MobileNumber string    `gorm:"size:50" json:"mobileNumber"`
	Role         string    `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `gorm:"size:100" json:"createdBy"`
	UpdatedAt    time.Time `json:"updatedAt"`
	UpdatedBy    string    `gorm:"size:100" json:"updatedBy"`
}

// IsPatient reports whether the user counts as a patient in reports.
func (u *User) IsPatient() bool {
	return u.Role == "" || u.Role == RoleUser
}
