package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
)

var ErrAdminExists = errors.New("an admin user already exists")

type UserService struct {
	uow      repository.Factory
	activity ActivitySink
	cost     int
}

func NewUserService(uow repository.Factory, activity ActivitySink, bcryptCost int) *UserService {
	return &UserService{uow: uow, activity: activity, cost: bcryptCost}
}

// CreateNewUser adds a patient account.
func (s *UserService) CreateNewUser(ctx context.Context, req *dto.SaveUserRequest) (*models.User, error) {
	return s.create(ctx, req, models.RoleUser, createdByAPI)
}

// CreateAdminUser adds an admin account on behalf of an existing admin.
func (s *UserService) CreateAdminUser(ctx context.Context, req *dto.SaveUserRequest, actor Actor) (*models.User, error) {
	user, err := s.create(ctx, req, models.RoleAdmin, actor.label())
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, ActivityEvent{
		Type:        models.ActivityAdminAction,
		Description: fmt.Sprintf("Admin user created: %s", user.Email),
		UserID:      actor.ID,
		UserName:    actor.Name,
		Details:     map[string]any{"adminId": user.ID, "adminEmail": user.Email},
	})
	return user, nil
}

// CreateFirstAdmin bootstraps the first admin. It fails once any admin exists.
func (s *UserService) CreateFirstAdmin(ctx context.Context, req *dto.SaveUserRequest) (*models.User, error) {
	admins, err := s.GetUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if len(admins) > 0 {
		return nil, ErrAdminExists
	}
	return s.CreateAdminUser(ctx, req, Actor{})
}

func (s *UserService) create(ctx context.Context, req *dto.SaveUserRequest, role, createdBy string) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || len(req.Password) < MinPasswordLength {
		return nil, invalid("email required and password must be at least %d characters", MinPasswordLength)
	}

	uow := s.uow()
	defer uow.Close()

	if err := emailAvailable(ctx, uow, email); err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.Password, s.cost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		FullName:     req.FullName,
		Email:        email,
		Password:     hash,
		MobileNumber: req.MobileNumber,
		Role:         role,
		CreatedBy:    createdBy,
	}
	uow.Users().Add(user)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, storeFailure(err)
	}
	return user, nil
}

// GetAllUsers returns an empty slice, not an error, when there are no users.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	uow := s.uow()
	defer uow.Close()

	users, err := uow.Users().GetAll(ctx)
	if err != nil {
		return nil, unknown(err)
	}
	return users, nil
}

func (s *UserService) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	uow := s.uow()
	defer uow.Close()

	users, err := uow.Users().Find(ctx, repository.Filter{"role": role})
	if err != nil {
		return nil, unknown(err)
	}
	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	uow := s.uow()
	defer uow.Close()

	user, err := uow.Users().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest, actor Actor) (*models.User, error) {
	uow := s.uow()
	defer uow.Close()

	user, err := uow.Users().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && email != user.Email {
		if err := emailAvailable(ctx, uow, email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	user.FullName = req.FullName
	user.MobileNumber = req.MobileNumber
	user.UpdatedBy = actor.label()

	uow.Users().Update(user)
	if _, err := uow.Complete(ctx); err != nil {
		return nil, storeFailure(err)
	}
	return user, nil
}

// DeleteUser removes the user row. Appointments keep their name snapshot.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	uow := s.uow()
	defer uow.Close()

	user, err := uow.Users().Get(ctx, id)
	if err != nil {
		return notFound(err, "user")
	}
	uow.Users().Delete(user)
	if _, err := uow.Complete(ctx); err != nil {
		return unknown(err)
	}
	return nil
}
