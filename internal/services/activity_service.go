package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityEvent is one entry for the admin activity feed.
type ActivityEvent struct {
	Type        string
	Description string
	UserID      *uuid.UUID
	UserName    string
	Details     any
}

// ActivitySink records activity events. Implementations never fail the
// caller; errors are logged and dropped.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent)
}

type activityStyle struct {
	icon  string
	color string
}

var activityStyles = map[string]activityStyle{
	models.ActivityUserRegistration:        {"person_add", "#4CAF50"},
	models.ActivityUserLogin:               {"login", "#2196F3"},
	models.ActivityUserLogout:              {"logout", "#607D8B"},
	models.ActivityAppointmentCreation:     {"event_available", "#FF9800"},
	models.ActivityAppointmentStatusChange: {"event_note", "#FFC107"},
	models.ActivityDoctorAssignment:        {"medical_services", "#9C27B0"},
	models.ActivityAdminAction:             {"admin_panel_settings", "#F44336"},
}

// ActivityStyle returns the icon and color shown for an activity type.
func ActivityStyle(activityType string) (icon, color string) {
	if s, ok := activityStyles[activityType]; ok {
		return s.icon, s.color
	}
	return "info", "#9E9E9E"
}

type ActivityService struct {
	uow repository.Factory
	now func() time.Time
}

func NewActivityService(uow repository.Factory) *ActivityService {
	return &ActivityService{uow: uow, now: time.Now}
}

// Record persists event synchronously in its own unit of work.
func (s *ActivityService) Record(ctx context.Context, event ActivityEvent) {
	if err := s.record(ctx, event); err != nil {
		logging.LogError(slog.Default(), "failed to record activity", err, "type", event.Type)
	}
}

func (s *ActivityService) record(ctx context.Context, event ActivityEvent) error {
	activity, err := s.newActivity(event)
	if err != nil {
		return err
	}

	uow := s.uow()
	defer uow.Close()
	uow.Activities().Add(activity)
	_, err = uow.Complete(ctx)
	return err
}

func (s *ActivityService) newActivity(event ActivityEvent) (*models.Activity, error) {
	icon, color := ActivityStyle(event.Type)
	activity := &models.Activity{
		ID:          uuid.New(),
		Type:        event.Type,
		Description: event.Description,
		UserID:      event.UserID,
		UserName:    event.UserName,
		CreatedAt:   s.now(),
		Icon:        icon,
		Color:       color,
	}
	if event.Details != nil {
		raw, err := json.Marshal(event.Details)
		if err != nil {
			return nil, err
		}
		activity.Details = datatypes.JSON(raw)
	}
	return activity, nil
}

// GetAll returns every activity, newest first.
func (s *ActivityService) GetAll(ctx context.Context) ([]models.Activity, error) {
	uow := s.uow()
	defer uow.Close()
	return s.recent(ctx, uow, -1)
}

// GetRecent returns at most count activities, newest first.
func (s *ActivityService) GetRecent(ctx context.Context, count int) ([]models.Activity, error) {
	if count <= 0 {
		return nil, invalid("count must be positive")
	}
	uow := s.uow()
	defer uow.Close()
	return s.recent(ctx, uow, count)
}

func (s *ActivityService) recent(ctx context.Context, uow repository.UnitOfWork, limit int) ([]models.Activity, error) {
	activities, err := uow.Activities().Recent(ctx, limit)
	if err != nil {
		return nil, unknown(err)
	}
	return activities, nil
}

func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	uow := s.uow()
	defer uow.Close()

	activity, err := uow.Activities().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "activity")
	}
	return activity, nil
}

// Create stores an activity as given. Icon and color default by type.
func (s *ActivityService) Create(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	if activity.Type == "" {
		return nil, invalid("type is required")
	}
	icon, color := ActivityStyle(activity.Type)
	if activity.Icon == "" {
		activity.Icon = icon
	}
	if activity.Color == "" {
		activity.Color = color
	}
	activity.ID = uuid.New()
	activity.CreatedAt = s.now()

	uow := s.uow()
	defer uow.Close()
	uow.Activities().Add(activity)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, unknown(err)
	}
	return activity, nil
}

// LogAppointmentActivity records event with the appointment's snapshot as
// details. It reports false when the appointment does not exist or the write
// fails.
func (s *ActivityService) LogAppointmentActivity(ctx context.Context, event ActivityEvent, appointmentID uuid.UUID) bool {
	uow := s.uow()
	appointment, err := uow.Appointments().Get(ctx, appointmentID)
	uow.Close()
	if err != nil {
		slog.Warn("appointment not found for activity logging", "appointment_id", appointmentID, "error", err)
		return false
	}

	event.Details = map[string]any{
		"appointmentId":     appointment.ID,
		"patientId":         appointment.PatientID,
		"patientName":       appointment.PatientName,
		"doctorId":          appointment.DoctorID,
		"doctorName":        appointment.DoctorName,
		"date":              appointment.Date,
		"status":            appointment.Status,
		"additionalDetails": event.Details,
	}
	if err := s.record(ctx, event); err != nil {
		logging.LogError(slog.Default(), "failed to record appointment activity", err, "appointment_id", appointmentID)
		return false
	}
	return true
}

// LogDoctorActivity is LogAppointmentActivity for doctors.
func (s *ActivityService) LogDoctorActivity(ctx context.Context, event ActivityEvent, doctorID uuid.UUID) bool {
	uow := s.uow()
	doctor, err := uow.Doctors().Get(ctx, doctorID)
	uow.Close()
	if err != nil {
		slog.Warn("doctor not found for activity logging", "doctor_id", doctorID, "error", err)
		return false
	}

	event.Details = map[string]any{
		"doctorId":          doctor.ID,
		"doctorName":        doctor.Name,
		"specialization":    doctor.Specialization,
		"additionalDetails": event.Details,
	}
	if err := s.record(ctx, event); err != nil {
		logging.LogError(slog.Default(), "failed to record doctor activity", err, "doctor_id", doctorID)
		return false
	}
	return true
}
