package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/google/uuid"
)

type UserSettingsService struct {
	uow repository.Factory
}

func NewUserSettingsService(uow repository.Factory) *UserSettingsService {
	return &UserSettingsService{uow: uow}
}

// GetUserSettings returns the stored settings, or the defaults when the user
// never saved any.
func (s *UserSettingsService) GetUserSettings(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	uow := s.uow()
	defer uow.Close()

	settings, err := uow.UserSettings().GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return settings, nil
	case errors.Is(err, repository.ErrNotFound):
		defaults := models.DefaultUserSettings(userID)
		return &defaults, nil
	default:
		return nil, unknown(err)
	}
}

// SaveUserSettings creates the user's settings, updating them if they exist.
func (s *UserSettingsService) SaveUserSettings(ctx context.Context, userID uuid.UUID, req *dto.UserSettingsRequest, actor Actor) (*models.UserSettings, error) {
	return s.upsert(ctx, userID, req, actor)
}

// UpdateUserSettings updates the user's settings, creating them if missing.
func (s *UserSettingsService) UpdateUserSettings(ctx context.Context, userID uuid.UUID, req *dto.UserSettingsRequest, actor Actor) (*models.UserSettings, error) {
	return s.upsert(ctx, userID, req, actor)
}

func (s *UserSettingsService) upsert(ctx context.Context, userID uuid.UUID, req *dto.UserSettingsRequest, actor Actor) (*models.UserSettings, error) {
	uow := s.uow()
	defer uow.Close()

	settings, err := uow.UserSettings().GetByUserID(ctx, userID)
	switch {
	case err == nil:
		applySettings(settings, req)
		settings.UpdatedBy = actor.label()
		uow.UserSettings().Update(settings)
	case errors.Is(err, repository.ErrNotFound):
		defaults := models.DefaultUserSettings(userID)
		settings = &defaults
		settings.ID = uuid.New()
		settings.CreatedBy = actor.label()
		applySettings(settings, req)
		uow.UserSettings().Add(settings)
	default:
		return nil, unknown(err)
	}

	if _, err := uow.Complete(ctx); err != nil {
		return nil, unknown(err)
	}
	return settings, nil
}

// applySettings copies req onto settings; empty fields fall back to defaults.
func applySettings(settings *models.UserSettings, req *dto.UserSettingsRequest) {
	settings.IsDarkMode = req.IsDarkMode
	settings.FontFamily = firstNonEmpty(req.FontFamily, models.DefaultFontFamily)
	settings.FontSize = req.FontSize
	if settings.FontSize <= 0 {
		settings.FontSize = models.DefaultFontSize
	}
	settings.Language = firstNonEmpty(req.Language, models.DefaultLanguage)
}
