package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(f *fixture) *UserService {
	return NewUserService(f.store.Factory(), f.activity, bcrypt.MinCost)
}

func TestGetAllUsers_EmptyStore(t *testing.T) {
	f := newFixture(t)

	users, err := newUserService(f).GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserService_CRUD(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	ctx := context.Background()

	u, err := svc.CreateNewUser(ctx, &dto.SaveUserRequest{FullName: "Can", Email: "can@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	_, err = svc.CreateNewUser(ctx, &dto.SaveUserRequest{Email: "can@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	got, err := svc.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Can", got.FullName)

	actorID := uuid.New()
	updated, err := svc.UpdateUser(ctx, u.ID, &dto.UpdateUserRequest{FullName: "Can Demir", Email: "can.demir@example.com", MobileNumber: "555"}, Actor{ID: &actorID, Email: "admin@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "can.demir@example.com", updated.Email)
	assert.Equal(t, "admin@example.com", updated.UpdatedBy)

	require.NoError(t, svc.DeleteUser(ctx, u.ID))
	_, err = svc.GetUserByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, u.ID), ErrNotFound)
}

func TestUserService_UpdateUserEmailConflict(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	a := f.seedUser(t, "a@example.com", "password1", models.RoleUser)
	f.seedUser(t, "b@example.com", "password1", models.RoleUser)

	_, err := svc.UpdateUser(context.Background(), a.ID, &dto.UpdateUserRequest{Email: "b@example.com"}, Actor{})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUserService_GetUsersByRole(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "p1@example.com", "password1", models.RoleUser)
	f.seedUser(t, "p2@example.com", "password1", models.RoleUser)
	f.seedUser(t, "root@example.com", "password1", models.RoleAdmin)

	admins, err := newUserService(f).GetUsersByRole(context.Background(), models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "root@example.com", admins[0].Email)
}

func TestUserService_CreateFirstAdmin(t *testing.T) {
	f := newFixture(t)
	svc := newUserService(f)
	ctx := context.Background()

	admin, err := svc.CreateFirstAdmin(ctx, &dto.SaveUserRequest{Email: "first@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, err = svc.CreateFirstAdmin(ctx, &dto.SaveUserRequest{Email: "second@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrAdminExists)

	other, err := svc.CreateAdminUser(ctx, &dto.SaveUserRequest{Email: "second@example.com", Password: "password1"}, Actor{ID: &admin.ID, Email: admin.Email})
	require.NoError(t, err)
	assert.Equal(t, "first@example.com", other.CreatedBy)

	activities, err := f.activity.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, activities, 2)
	assert.Equal(t, models.ActivityAdminAction, activities[0].Type)
}
