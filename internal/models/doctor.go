package models

import (
	"time"

	"github.com/google/uuid"
)

type Doctor struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string    `gorm:"size:255" json:"name"`
	Specialization string    `gorm:"size:255" json:"specialization"`
	Email          string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PhoneNumber    string    `gorm:"size:50" json:"phoneNumber"`
	Password       string    `gorm:"not null" json:"-"`
	IsAvailable    bool      `gorm:"not null" json:"isAvailable"`
	Role           string    `gorm:"size:20;default:'doctor'" json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `gorm:"size:100" json:"createdBy"`
	UpdatedAt      time.Time `json:"updatedAt"`
	UpdatedBy      string    `gorm:"size:100" json:"updatedBy"`
}
