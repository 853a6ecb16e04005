package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Activity types shown in the admin feed.
const (
	ActivityUserRegistration        = "UserRegistration"
	ActivityUserLogin               = "UserLogin"
	ActivityUserLogout              = "UserLogout"
	ActivityAppointmentCreation     = "AppointmentCreation"
	ActivityAppointmentStatusChange = "AppointmentStatusChange"
	ActivityDoctorAssignment        = "DoctorAssignment"
	ActivityAdminAction             = "AdminAction"
)

type Activity struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type        string         `gorm:"size:50;index" json:"type"`
	Description string         `gorm:"type:text" json:"description"`
	UserID      *uuid.UUID     `gorm:"type:uuid" json:"userId"`
	UserName    string         `gorm:"size:255" json:"userName"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	Details     datatypes.JSON `gorm:"type:jsonb" json:"details"`
	Icon        string         `gorm:"size:50" json:"icon"`
	Color       string         `gorm:"size:20" json:"color"`
}
