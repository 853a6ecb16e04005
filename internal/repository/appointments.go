package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Repository[models.Appointment]
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]models.Appointment, error)
}

type appointmentRepository struct {
	*gormRepository[models.Appointment]
}

func newAppointmentRepository(db *gorm.DB, changes *ChangeSet) AppointmentRepository {
	return appointmentRepository{newGormRepository[models.Appointment](db, changes)}
}

func (r appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Appointment, error) {
	return r.list(r.db.WithContext(ctx).Where("patient_id = ?", patientID).Order("date DESC"))
}

func (r appointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]models.Appointment, error) {
	return r.list(r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Order("date DESC"))
}
