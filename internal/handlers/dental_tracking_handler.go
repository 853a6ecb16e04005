package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DentalTrackingHandler struct {
	trackingService *services.DentalTrackingService
}

func NewDentalTrackingHandler(trackingService *services.DentalTrackingService) *DentalTrackingHandler {
	return &DentalTrackingHandler{trackingService: trackingService}
}

func (h *DentalTrackingHandler) GetAllRecords(c *fiber.Ctx) error {
	records, err := h.trackingService.GetAllRecords(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Records retrieved", records)
}

func (h *DentalTrackingHandler) GetUserRecords(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	records, err := h.trackingService.GetUserRecords(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Records retrieved", records)
}

// GetUserRecordByDate reads the day from ?date=YYYY-MM-DD.
func (h *DentalTrackingHandler) GetUserRecordByDate(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		return fail(c, err)
	}
	record, err := h.trackingService.GetUserRecordByDate(c.UserContext(), userID, date)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Record retrieved", record)
}

func (h *DentalTrackingHandler) GetUserRecordsForDateRange(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	start, startErr := parseDate(c.Query("startDate"))
	end, endErr := parseDate(c.Query("endDate"))
	if err := errors.Join(startErr, endErr); err != nil {
		return fail(c, err)
	}
	records, err := h.trackingService.GetUserRecordsForDateRange(c.UserContext(), userID, start, end)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Records retrieved", records)
}

func (h *DentalTrackingHandler) GetUserSummary(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return fail(c, err)
	}
	summary, err := h.trackingService.GetUserSummary(c.UserContext(), userID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Summary retrieved", summary)
}

func (h *DentalTrackingHandler) SaveRecord(c *fiber.Ctx) error {
	var req dto.SaveDentalTrackingRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	record, err := h.trackingService.SaveRecord(c.UserContext(), &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Record saved", record)
}

func (h *DentalTrackingHandler) UpdateRecord(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.SaveDentalTrackingRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}
	record, err := h.trackingService.UpdateRecord(c.UserContext(), id, &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Record updated", record)
}

func (h *DentalTrackingHandler) DeleteRecord(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.trackingService.DeleteRecord(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, "Record deleted", nil)
}
