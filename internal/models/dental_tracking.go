package models

import (
	"time"

	"github.com/google/uuid"
)

// DentalTracking is one user's oral-care log for a single calendar day.
type DentalTracking struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index:idx_dental_user_date" json:"userId"`
	Date            time.Time `gorm:"type:date;not null;index:idx_dental_user_date" json:"date"`
	MorningBrushing bool      `json:"morningBrushing"`
	EveningBrushing bool      `json:"eveningBrushing"`
	UsedFloss       bool      `json:"usedFloss"`
	UsedMouthwash   bool      `json:"usedMouthwash"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	CreatedBy       string    `gorm:"size:100" json:"createdBy"`
	UpdatedAt       time.Time `json:"updatedAt"`
	UpdatedBy       string    `gorm:"size:100" json:"updatedBy"`
}

// BrushingCount is the number of brushings logged for the day (0-2).
func (d *DentalTracking) BrushingCount() int {
	n := 0
	if d.MorningBrushing {
		n++
	}
	if d.EveningBrushing {
		n++
	}
	return n
}

// Day truncates t to midnight UTC, the key dental records are stored under.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
