package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses used by the mobile client. Status is free text; any
// string is stored as given.
const (
	StatusPending   = "Bekliyor"
	StatusCompleted = "Tamamlandı"
	StatusCancelled = "İptal"
)

type Appointment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"patientId"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"doctorId"`
	PatientName string    `gorm:"size:255" json:"patientName"`
	DoctorName  string    `gorm:"size:255" json:"doctorName"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Time        string    `gorm:"size:20" json:"time"`
	Status      string    `gorm:"size:50" json:"status"`
	Type        string    `gorm:"size:100" json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `gorm:"size:100" json:"createdBy"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UpdatedBy   string    `gorm:"size:100" json:"updatedBy"`
}
