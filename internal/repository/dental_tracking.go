package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DentalTrackingRepository interface {
	Repository[models.DentalTracking]
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DentalTracking, error)
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) (*models.DentalTracking, error)
	ListByUserInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.DentalTracking, error)
}

type UserSettingsRepository interface {
	Repository[models.UserSettings]
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error)
}

type dentalTrackingRepository struct {
	*gormRepository[models.DentalTracking]
}

func newDentalTrackingRepository(db *gorm.DB, changes *ChangeSet) DentalTrackingRepository {
	return dentalTrackingRepository{newGormRepository[models.DentalTracking](db, changes)}
}

func (r dentalTrackingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.DentalTracking, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC"))
}

func (r dentalTrackingRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, day time.Time) (*models.DentalTracking, error) {
	return r.first(r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, models.Day(day)))
}

// ListByUserInRange returns records whose day lies in [start, end], oldest first.
func (r dentalTrackingRepository) ListByUserInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.DentalTracking, error) {
	return r.list(r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, models.Day(start), models.Day(end)).
		Order("date ASC"))
}

type userSettingsRepository struct {
	*gormRepository[models.UserSettings]
}

func newUserSettingsRepository(db *gorm.DB, changes *ChangeSet) UserSettingsRepository {
	return userSettingsRepository{newGormRepository[models.UserSettings](db, changes)}
}

func (r userSettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	return r.first(r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC"))
}
