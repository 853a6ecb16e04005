package handlers

import (
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UserSettingsHandler always acts on the caller's own settings.
type UserSettingsHandler struct {
	settingsService *services.UserSettingsService
}

func NewUserSettingsHandler(settingsService *services.UserSettingsService) *UserSettingsHandler {
	return &UserSettingsHandler{settingsService: settingsService}
}

func (h *UserSettingsHandler) GetUserSettings(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, err)
	}
	settings, err := h.settingsService.GetUserSettings(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Settings retrieved", settings)
}

func (h *UserSettingsHandler) SaveUserSettings(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, err)
	}
	var req dto.UserSettingsRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	settings, err := h.settingsService.SaveUserSettings(c.UserContext(), userID, &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Settings saved", settings)
}

func (h *UserSettingsHandler) UpdateUserSettings(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return fail(c, err)
	}
	var req dto.UserSettingsRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	settings, err := h.settingsService.UpdateUserSettings(c.UserContext(), userID, &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Settings updated", settings)
}
