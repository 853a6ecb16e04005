package handlers

import (
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DoctorHandler struct {
	doctorService *services.DoctorService
}

func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

func (h *DoctorHandler) GetAllDoctors(c *fiber.Ctx) error {
	doctors, err := h.doctorService.GetAllDoctors(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Doctors retrieved", doctors)
}

// GetCurrentDoctor serves doctor tokens only.
func (h *DoctorHandler) GetCurrentDoctor(c *fiber.Ctx) error {
	id, err := middleware.DoctorID(c)
	if err != nil {
		return fail(c, err)
	}
	doctor, err := h.doctorService.GetDoctorByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Doctor retrieved", doctor)
}

func (h *DoctorHandler) GetDoctorByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	doctor, err := h.doctorService.GetDoctorByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Doctor retrieved", doctor)
}

func (h *DoctorHandler) CreateDoctor(c *fiber.Ctx) error {
	var req dto.SaveDoctorRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	doctor, err := h.doctorService.CreateDoctor(c.UserContext(), &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Doctor created", doctor)
}

func (h *DoctorHandler) UpdateDoctor(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.SaveDoctorRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	doctor, err := h.doctorService.UpdateDoctor(c.UserContext(), id, &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Doctor updated", doctor)
}

func (h *DoctorHandler) DeleteDoctor(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.doctorService.DeleteDoctor(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, "Doctor deleted", nil)
}
