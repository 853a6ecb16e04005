package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
)

// DefaultDoctorPassword is set when a doctor is created without a password.
const DefaultDoctorPassword = "Doctor123"

// DoctorService manages doctor accounts. Doctor identity lives only in the
// doctors table; user rows are never created or removed here.
type DoctorService struct {
	uow      repository.Factory
	activity *ActivityService
	cost     int
}

func NewDoctorService(uow repository.Factory, activity *ActivityService, bcryptCost int) *DoctorService {
	return &DoctorService{uow: uow, activity: activity, cost: bcryptCost}
}

func (s *DoctorService) CreateDoctor(ctx context.Context, req *dto.SaveDoctorRequest, actor Actor) (*models.Doctor, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || strings.TrimSpace(req.Name) == "" {
		return nil, invalid("name and email are required")
	}

	uow := s.uow()
	defer uow.Close()

	if err := emailAvailable(ctx, uow, email); err != nil {
		return nil, err
	}

	password := req.Password
	if password == "" {
		password = DefaultDoctorPassword
	}
	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	doctor := &models.Doctor{
		ID:             uuid.New(),
		Name:           req.Name,
		Specialization: req.Specialization,
		Email:          email,
		PhoneNumber:    req.PhoneNumber,
		Password:       hash,
		IsAvailable:    available,
		Role:           models.RoleDoctor,
		CreatedBy:      actor.label(),
	}
	uow.Doctors().Add(doctor)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, storeFailure(err)
	}

	s.activity.LogDoctorActivity(ctx, ActivityEvent{
		Type:        models.ActivityDoctorAssignment,
		Description: fmt.Sprintf("New doctor added: Dr. %s", doctor.Name),
		UserID:      actor.ID,
		UserName:    actor.Name,
	}, doctor.ID)
	return doctor, nil
}

func (s *DoctorService) GetAllDoctors(ctx context.Context) ([]models.Doctor, error) {
	uow := s.uow()
	defer uow.Close()

	doctors, err := uow.Doctors().GetAll(ctx)
	if err != nil {
		return nil, unknown(err)
	}
	return doctors, nil
}

func (s *DoctorService) GetDoctorByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	uow := s.uow()
	defer uow.Close()

	doctor, err := uow.Doctors().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "doctor")
	}
	return doctor, nil
}

func (s *DoctorService) GetDoctorByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	uow := s.uow()
	defer uow.Close()

	doctor, err := uow.Doctors().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, notFound(err, "doctor")
	}
	return doctor, nil
}

// UpdateDoctor replaces profile fields. The password changes only when one
// is given.
func (s *DoctorService) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.SaveDoctorRequest, actor Actor) (*models.Doctor, error) {
	uow := s.uow()
	defer uow.Close()

	doctor, err := uow.Doctors().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "doctor")
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && email != doctor.Email {
		if err := emailAvailable(ctx, uow, email); err != nil {
			return nil, err
		}
		doctor.Email = email
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password, s.cost)
		if err != nil {
			return nil, err
		}
		doctor.Password = hash
	}
	if req.IsAvailable != nil {
		doctor.IsAvailable = *req.IsAvailable
	}
	doctor.Name = req.Name
	doctor.Specialization = req.Specialization
	doctor.PhoneNumber = req.PhoneNumber
	doctor.UpdatedBy = actor.label()

	uow.Doctors().Update(doctor)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, storeFailure(err)
	}
	return doctor, nil
}

func (s *DoctorService) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	uow := s.uow()
	defer uow.Close()

	doctor, err := uow.Doctors().Get(ctx, id)
	if err != nil {
		return notFound(err, "doctor")
	}
	uow.Doctors().Delete(doctor)
	if _, err := uow.Complete(ctx); err != nil {
		return unknown(err)
	}
	return nil
}
