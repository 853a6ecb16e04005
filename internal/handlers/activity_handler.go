package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) GetAll(c *fiber.Ctx) error {
	activities, err := h.activityService.GetAll(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Activities retrieved", activities)
}

func (h *ActivityHandler) GetRecent(c *fiber.Ctx) error {
	count, err := strconv.Atoi(c.Params("count"))
	if err != nil {
		return fail(c, errors.New("invalid count"))
	}
	activities, err := h.activityService.GetRecent(c.UserContext(), count)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Activities retrieved", activities)
}

func (h *ActivityHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	activity, err := h.activityService.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Activity retrieved", activity)
}

func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateActivityRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	activity, err := h.activityService.Create(c.UserContext(), &models.Activity{
		Type:        req.Type,
		Description: req.Description,
		UserID:      req.UserID,
		UserName:    req.UserName,
		Details:     detailsJSON(req.Details),
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Activity created", activity)
}

// detailsJSON stores JSON details as sent and wraps anything else as a
// JSON string.
func detailsJSON(details string) datatypes.JSON {
	if details == "" {
		return nil
	}
	if json.Valid([]byte(details)) {
		return datatypes.JSON(details)
	}
	raw, _ := json.Marshal(details)
	return datatypes.JSON(raw)
}
