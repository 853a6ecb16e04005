package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	Repository[models.Activity]
	Recent(ctx context.Context, limit int) ([]models.Activity, error)
}

type activityRepository struct {
	*gormRepository[models.Activity]
}

func newActivityRepository(db *gorm.DB, changes *ChangeSet) ActivityRepository {
	return activityRepository{newGormRepository[models.Activity](db, changes)}
}

func (r activityRepository) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	return r.list(r.db.WithContext(ctx).Order("created_at DESC").Limit(limit))
}
