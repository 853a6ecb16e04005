package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	Users          *handlers.UserHandler
	Doctors        *handlers.DoctorHandler
	Appointments   *handlers.AppointmentHandler
	Reports        *handlers.ReportHandler
	DentalTracking *handlers.DentalTrackingHandler
	UserSettings   *handlers.UserSettingsHandler
	Activity       *handlers.ActivityHandler
	Health         *handlers.HealthHandler
}

func rateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail("Too many requests"))
		},
	})
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	jwt := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired()

	app.Get("/metrics", rateLimit(120), jwt, admin, adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(rateLimit(120))

	api.Get("/health", h.Health.Check)

	// Auth: stricter limiter for credential and reset endpoints
	auth := api.Group("/Auth", rateLimit(20))
	auth.Post("/Register", h.Auth.Register)
	auth.Post("/Login", h.Auth.Login)
	auth.Post("/SendPasswordResetEmail", h.Auth.SendPasswordResetEmail)
	auth.Post("/ForgotPassword", h.Auth.ForgotPassword)
	auth.Post("/VerifyResetCode", h.Auth.VerifyResetCode)
	auth.Post("/ResetPasswordWithToken", h.Auth.ResetPasswordWithToken)
	auth.Post("/CreateFirstAdmin", h.Auth.CreateFirstAdmin)
	auth.Post("/ChangePassword", jwt, h.Auth.ChangePassword)
	auth.Post("/CreateAdminUser", jwt, admin, h.Auth.CreateAdminUser)

	users := api.Group("/Users", jwt)
	users.Get("/GetAllUsers", h.Users.GetAllUsers)
	users.Get("/GetCurrentUser", h.Users.GetCurrentUser)
	users.Get("/ByRole/:role", h.Users.GetUsersByRole)
	users.Post("/CreateNewUser", h.Users.CreateNewUser)
	users.Put("/UpdateUser/:id", h.Users.UpdateUser)
	users.Delete("/DeleteUser/:id", admin, h.Users.DeleteUser)
	users.Get("/:id", h.Users.GetUserByID)
	users.Put("/:id", h.Users.UpdateUser)
	users.Delete("/:id", admin, h.Users.DeleteUser)

	doctors := api.Group("/Doctors", jwt)
	doctors.Get("/GetAllDoctors", h.Doctors.GetAllDoctors)
	doctors.Get("/GetCurrentDoctor", h.Doctors.GetCurrentDoctor)
	doctors.Post("/CreateDoctor", admin, h.Doctors.CreateDoctor)
	doctors.Get("/:id", h.Doctors.GetDoctorByID)
	doctors.Put("/:id", admin, h.Doctors.UpdateDoctor)
	doctors.Delete("/:id", admin, h.Doctors.DeleteDoctor)

	appointments := api.Group("/Appointments", jwt)
	appointments.Get("/GetAllAppointments", h.Appointments.GetAllAppointments)
	appointments.Post("/CreateAppointment", h.Appointments.CreateAppointment)
	appointments.Get("/patient/:patientId", h.Appointments.GetByPatient)
	appointments.Get("/doctor/:doctorId", h.Appointments.GetByDoctor)
	appointments.Put("/UpdateStatus/:id", h.Appointments.UpdateStatus)
	appointments.Get("/:id", h.Appointments.GetAppointmentByID)
	appointments.Put("/:id", h.Appointments.UpdateAppointment)
	appointments.Delete("/:id", h.Appointments.DeleteAppointment)

	api.Get("/Reports/GetReportData", jwt, admin, h.Reports.GetReportData)
	api.Get("/Admin/dashboard", jwt, admin, h.Reports.GetDashboard)

	tracking := api.Group("/DentalTracking", jwt)
	tracking.Get("/", h.DentalTracking.GetAllRecords)
	tracking.Get("/user/:userId", h.DentalTracking.GetUserRecords)
	tracking.Get("/user/:userId/date", h.DentalTracking.GetUserRecordByDate)
	tracking.Get("/user/:userId/range", h.DentalTracking.GetUserRecordsForDateRange)
	tracking.Get("/user/:userId/summary", h.DentalTracking.GetUserSummary)
	tracking.Post("/", h.DentalTracking.SaveRecord)
	tracking.Put("/:id", h.DentalTracking.UpdateRecord)
	tracking.Delete("/:id", h.DentalTracking.DeleteRecord)

	settings := api.Group("/UserSettings", jwt)
	settings.Get("/GetUserSettings", h.UserSettings.GetUserSettings)
	settings.Post("/SaveUserSettings", h.UserSettings.SaveUserSettings)
	settings.Put("/UpdateUserSettings", h.UserSettings.UpdateUserSettings)

	activity := api.Group("/Activity", jwt)
	activity.Get("/", h.Activity.GetAll)
	activity.Get("/recent/:count", h.Activity.GetRecent)
	activity.Get("/:id", h.Activity.GetByID)
	activity.Post("/", h.Activity.Create)
}
