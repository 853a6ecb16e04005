package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveAppointmentRequest struct {
	PatientID   uuid.UUID `json:"patientId" validate:"required"`
	DoctorID    uuid.UUID `json:"doctorId" validate:"required"`
	PatientName string    `json:"patientName"`
	DoctorName  string    `json:"doctorName"`
	Date        time.Time `json:"date" validate:"required"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type SaveDentalTrackingRequest struct {
	UserID          uuid.UUID `json:"userId" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
	MorningBrushing bool      `json:"morningBrushing"`
	EveningBrushing bool      `json:"eveningBrushing"`
	UsedFloss       bool      `json:"usedFloss"`
	UsedMouthwash   bool      `json:"usedMouthwash"`
	Notes           string    `json:"notes"`
}

type DentalTrackingSummary struct {
	UserID              uuid.UUID `json:"userId"`
	BrushingPercentage  float64   `json:"brushingPercentage"`
	FlossPercentage     float64   `json:"flossPercentage"`
	MouthwashPercentage float64   `json:"mouthwashPercentage"`
}

type CreateActivityRequest struct {
	Type        string     `json:"type" validate:"required"`
	Description string     `json:"description"`
	UserID      *uuid.UUID `json:"userId"`
	UserName    string     `json:"userName"`
	Details     string     `json:"details"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color"`
}
