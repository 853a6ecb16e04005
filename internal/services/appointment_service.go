package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
)

type AppointmentService struct {
	uow      repository.Factory
	activity *ActivityService
}

func NewAppointmentService(uow repository.Factory, activity *ActivityService) *AppointmentService {
	return &AppointmentService{uow: uow, activity: activity}
}

// CreateAppointment books an appointment. Patient and doctor names are
// snapshotted from their records unless given.
func (s *AppointmentService) CreateAppointment(ctx context.Context, req *dto.SaveAppointmentRequest, actor Actor) (*models.Appointment, error) {
	uow := s.uow()
	defer uow.Close()

	patient, err := uow.Users().Get(ctx, req.PatientID)
	if err != nil {
		return nil, notFound(err, "patient")
	}
	doctor, err := uow.Doctors().Get(ctx, req.DoctorID)
	if err != nil {
		return nil, notFound(err, "doctor")
	}

	appointment := &models.Appointment{
		ID:          uuid.New(),
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		PatientName: firstNonEmpty(req.PatientName, patient.FullName),
		DoctorName:  firstNonEmpty(req.DoctorName, doctor.Name),
		Date:        req.Date,
		Time:        req.Time,
		Status:      firstNonEmpty(req.Status, models.StatusPending),
		Type:        req.Type,
		CreatedBy:   actor.label(),
	}
	uow.Appointments().Add(appointment)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, unknown(err)
	}
	metrics.RecordAppointment(appointment.Type)

	s.activity.LogAppointmentActivity(ctx, ActivityEvent{
		Type: models.ActivityAppointmentCreation,
		Description: fmt.Sprintf("New appointment: %s with Dr. %s on %s",
			appointment.PatientName, appointment.DoctorName, appointment.Date.Format("2006-01-02")),
		UserID:   actor.ID,
		UserName: actor.Name,
	}, appointment.ID)
	return appointment, nil
}

func (s *AppointmentService) GetAllAppointments(ctx context.Context) ([]models.Appointment, error) {
	uow := s.uow()
	defer uow.Close()

	appointments, err := uow.Appointments().GetAll(ctx)
	if err != nil {
		return nil, unknown(err)
	}
	return appointments, nil
}

func (s *AppointmentService) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	uow := s.uow()
	defer uow.Close()

	appointment, err := uow.Appointments().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "appointment")
	}
	return appointment, nil
}

func (s *AppointmentService) GetAppointmentsByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Appointment, error) {
	uow := s.uow()
	defer uow.Close()

	appointments, err := uow.Appointments().ListByPatient(ctx, patientID)
	if err != nil {
		return nil, unknown(err)
	}
	return appointments, nil
}

func (s *AppointmentService) GetAppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]models.Appointment, error) {
	uow := s.uow()
	defer uow.Close()

	appointments, err := uow.Appointments().ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, unknown(err)
	}
	return appointments, nil
}

// UpdateAppointment replaces the schedule and snapshot fields. Patient and
// doctor IDs are fixed at booking.
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.SaveAppointmentRequest, actor Actor) (*models.Appointment, error) {
	uow := s.uow()
	defer uow.Close()

	appointment, err := uow.Appointments().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "appointment")
	}
	appointment.PatientName = firstNonEmpty(req.PatientName, appointment.PatientName)
	appointment.DoctorName = firstNonEmpty(req.DoctorName, appointment.DoctorName)
	if !req.Date.IsZero() {
		appointment.Date = req.Date
	}
	appointment.Time = req.Time
	appointment.Status = firstNonEmpty(req.Status, appointment.Status)
	appointment.Type = req.Type
	appointment.UpdatedBy = actor.label()

	uow.Appointments().Update(appointment)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, unknown(err)
	}
	return appointment, nil
}

// UpdateStatus stores status as given; any string is accepted.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, actor Actor) (*models.Appointment, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, invalid("status is required")
	}

	uow := s.uow()
	defer uow.Close()

	appointment, err := uow.Appointments().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "appointment")
	}
	previous := appointment.Status
	appointment.Status = status
	appointment.UpdatedBy = actor.label()

	uow.Appointments().Update(appointment)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, unknown(err)
	}

	s.activity.LogAppointmentActivity(ctx, ActivityEvent{
		Type:        models.ActivityAppointmentStatusChange,
		Description: fmt.Sprintf("Appointment status changed: %s -> %s", previous, status),
		UserID:      actor.ID,
		UserName:    actor.Name,
		Details:     map[string]string{"previousStatus": previous},
	}, appointment.ID)
	return appointment, nil
}

func (s *AppointmentService) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	uow := s.uow()
	defer uow.Close()

	appointment, err := uow.Appointments().Get(ctx, id)
	if err != nil {
		return notFound(err, "appointment")
	}
	uow.Appointments().Delete(appointment)
	if _, err := uow.Complete(ctx); err != nil {
		return unknown(err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
