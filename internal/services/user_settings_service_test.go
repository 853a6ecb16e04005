package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSettings_DefaultsWhenMissing(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	settings, err := NewUserSettingsService(f.store.Factory()).GetUserSettings(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, settings.UserID)
	assert.Equal(t, models.DefaultFontFamily, settings.FontFamily)
	assert.Equal(t, models.DefaultFontSize, settings.FontSize)
	assert.Equal(t, models.DefaultLanguage, settings.Language)
	assert.False(t, settings.IsDarkMode)
	assert.Equal(t, 0, f.store.Count(&models.UserSettings{}))
}

func TestUserSettings_SaveThenUpdate(t *testing.T) {
	f := newFixture(t)
	svc := NewUserSettingsService(f.store.Factory())
	ctx := context.Background()
	userID := uuid.New()

	saved, err := svc.SaveUserSettings(ctx, userID, &dto.UserSettingsRequest{IsDarkMode: true, FontSize: 1.2, Language: "en"}, Actor{Email: "u@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultFontFamily, saved.FontFamily)
	assert.Equal(t, "u@example.com", saved.CreatedBy)

	updated, err := svc.UpdateUserSettings(ctx, userID, &dto.UserSettingsRequest{FontFamily: "Serif"}, Actor{})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.False(t, updated.IsDarkMode)
	assert.Equal(t, "Serif", updated.FontFamily)
	assert.Equal(t, models.DefaultFontSize, updated.FontSize)
	assert.Equal(t, models.DefaultLanguage, updated.Language)
	assert.Equal(t, 1, f.store.Count(&models.UserSettings{}))

	got, err := svc.GetUserSettings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Serif", got.FontFamily)
}
