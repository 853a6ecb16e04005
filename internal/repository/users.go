package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	Repository[models.User]
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type DoctorRepository interface {
	Repository[models.Doctor]
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
}

type userRepository struct {
	*gormRepository[models.User]
}

func (r userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(r.db.WithContext(ctx).Where("email = ?", email))
}

type doctorRepository struct {
	*gormRepository[models.Doctor]
}

func (r doctorRepository) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return r.first(r.db.WithContext(ctx).Where("email = ?", email))
}

func newUserRepository(db *gorm.DB, changes *ChangeSet) UserRepository {
	return userRepository{newGormRepository[models.User](db, changes)}
}

func newDoctorRepository(db *gorm.DB, changes *ChangeSet) DoctorRepository {
	return doctorRepository{newGormRepository[models.Doctor](db, changes)}
}
