package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultFontFamily = "Default"
	DefaultFontSize   = 1.0
	DefaultLanguage   = "tr"
)

type UserSettings struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	IsDarkMode bool      `json:"isDarkMode"`
	FontFamily string    `gorm:"size:100;default:'Default'" json:"fontFamily"`
	FontSize   float64   `gorm:"default:1" json:"fontSize"`
	Language   string    `gorm:"size:10;default:'tr'" json:"language"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `gorm:"size:100" json:"createdBy"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UpdatedBy  string    `gorm:"size:100" json:"updatedBy"`
}

// DefaultUserSettings returns the settings a user gets before saving any.
func DefaultUserSettings(userID uuid.UUID) UserSettings {
	return UserSettings{
		UserID:     userID,
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		Language:   DefaultLanguage,
	}
}
