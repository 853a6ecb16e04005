package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/samber/oops"
	"gorm.io/gorm"
)

// PasswordResetTokenRepository looks tokens up by validity at a given instant;
// expiry is never swept, only checked here.
type PasswordResetTokenRepository interface {
	Repository[models.PasswordResetToken]
	GetValidByEmail(ctx context.Context, email string, now time.Time) (*models.PasswordResetToken, error)
	ListValidByEmail(ctx context.Context, email string, now time.Time) ([]models.PasswordResetToken, error)
	GetValidByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*models.PasswordResetToken, error)
}

// AttemptQuery selects password reset attempts made at or after Since.
// Empty string fields are not filtered on.
type AttemptQuery struct {
	Email       string
	IPAddress   string
	AttemptType string
	Since       time.Time
	FailedOnly  bool
}

type PasswordResetAttemptRepository interface {
	Repository[models.PasswordResetAttempt]
	Count(ctx context.Context, q AttemptQuery) (int64, error)
}

type passwordResetTokenRepository struct {
	*gormRepository[models.PasswordResetToken]
}

func newPasswordResetTokenRepository(db *gorm.DB, changes *ChangeSet) PasswordResetTokenRepository {
	return passwordResetTokenRepository{newGormRepository[models.PasswordResetToken](db, changes)}
}

func (r passwordResetTokenRepository) valid(ctx context.Context, email string, now time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("email = ? AND is_used = ? AND expiry_date > ?", email, false, now).
		Order("created_at DESC")
}

func (r passwordResetTokenRepository) GetValidByEmail(ctx context.Context, email string, now time.Time) (*models.PasswordResetToken, error) {
	return r.first(r.valid(ctx, email, now))
}

func (r passwordResetTokenRepository) ListValidByEmail(ctx context.Context, email string, now time.Time) ([]models.PasswordResetToken, error) {
	return r.list(r.valid(ctx, email, now))
}

func (r passwordResetTokenRepository) GetValidByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*models.PasswordResetToken, error) {
	return r.first(r.valid(ctx, email, now).Where("token = ?", code))
}

type passwordResetAttemptRepository struct {
	*gormRepository[models.PasswordResetAttempt]
}

func newPasswordResetAttemptRepository(db *gorm.DB, changes *ChangeSet) PasswordResetAttemptRepository {
	return passwordResetAttemptRepository{newGormRepository[models.PasswordResetAttempt](db, changes)}
}

func (r passwordResetAttemptRepository) Count(ctx context.Context, q AttemptQuery) (int64, error) {
	db := r.db.WithContext(ctx).Model(&models.PasswordResetAttempt{}).
		Where("attempt_time >= ?", q.Since)
	if q.Email != "" {
		db = db.Where("email = ?", q.Email)
	}
	if q.IPAddress != "" {
		db = db.Where("ip_address = ?", q.IPAddress)
	}
	if q.AttemptType != "" {
		db = db.Where("attempt_type = ?", q.AttemptType)
	}
	if q.FailedOnly {
		db = db.Where("is_successful = ?", false)
	}

	var n int64
	if err := db.Count(&n).Error; err != nil {
		return 0, oops.Code("STORE_QUERY_FAILED").Wrap(err)
	}
	return n, nil
}
