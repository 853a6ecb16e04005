package handlers

import (
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) GetAllAppointments(c *fiber.Ctx) error {
	appointments, err := h.appointmentService.GetAllAppointments(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Appointments retrieved", appointments)
}

func (h *AppointmentHandler) GetAppointmentByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	appointment, err := h.appointmentService.GetAppointmentByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Appointment retrieved", appointment)
}

func (h *AppointmentHandler) GetByPatient(c *fiber.Ctx) error {
	id, err := paramID(c, "patientId")
	if err != nil {
		return fail(c, err)
	}
	appointments, err := h.appointmentService.GetAppointmentsByPatient(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Appointments retrieved", appointments)
}

func (h *AppointmentHandler) GetByDoctor(c *fiber.Ctx) error {
	id, err := paramID(c, "doctorId")
	if err != nil {
		return fail(c, err)
	}
	appointments, err := h.appointmentService.GetAppointmentsByDoctor(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Appointments retrieved", appointments)
}

func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var req dto.SaveAppointmentRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	appointment, err := h.appointmentService.CreateAppointment(c.UserContext(), &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, "Appointment created", appointment)
}

// UpdateAppointment accepts a partial body; patient and doctor stay fixed.
func (h *AppointmentHandler) UpdateAppointment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.SaveAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, errInvalidBody)
	}
	appointment, err := h.appointmentService.UpdateAppointment(c.UserContext(), id, &req, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Appointment updated", appointment)
}

func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateStatusRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	appointment, err := h.appointmentService.UpdateStatus(c.UserContext(), id, req.Status, middleware.Actor(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Appointment status updated", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.appointmentService.DeleteAppointment(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return ok(c, "Appointment deleted", nil)
}
