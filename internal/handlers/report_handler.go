package handlers

import (
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
	adminService  *services.AdminService
}

func NewReportHandler(reportService *services.ReportService, adminService *services.AdminService) *ReportHandler {
	return &ReportHandler{reportService: reportService, adminService: adminService}
}

func (h *ReportHandler) GetReportData(c *fiber.Ctx) error {
	report, err := h.reportService.GetReportData(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Report data retrieved", report)
}

func (h *ReportHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.adminService.GetDashboard(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, "Dashboard statistics retrieved", stats)
}
