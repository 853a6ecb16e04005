package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/jobs"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/dentalcare-backend/internal/services"
)

const shutdownTimeout = 10 * time.Second

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	cmd.Flags().String("port", "8080", "HTTP listen port")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.AppEnv)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	if err := database.Connect(cfg); err != nil {
		return oops.Code("DB_CONNECT_FAILED").Wrap(err)
	}
	if err := database.Migrate(database.DB); err != nil {
		return oops.Code("MIGRATION_FAILED").Wrap(err)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		stdout,
		pgLogHandler,
	)))

	// Retention sweeps for system_logs and password reset rows
	scheduler, err := jobs.New(database.DB, cfg)
	if err != nil {
		return oops.Code("JOBS_INVALID").Wrap(err)
	}
	scheduler.Start()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := newApp(cfg, repository.NewFactory(database.DB))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	scheduler.Stop(ctx)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
	return nil
}

// newApp wires services, handlers and middleware on top of uow.
func newApp(cfg *config.Config, uow repository.Factory) *fiber.App {
	activity := services.NewActivityService(uow)
	security := services.NewSecurityService(uow, cfg.RateLimitEnabled)
	authService := services.NewAuthService(uow, cfg, security, services.NewSMTPSender(cfg), activity)
	userService := services.NewUserService(uow, activity, cfg.BcryptCost)

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, routes.Handlers{
		Auth:           handlers.NewAuthHandler(authService, userService),
		Users:          handlers.NewUserHandler(userService),
		Doctors:        handlers.NewDoctorHandler(services.NewDoctorService(uow, activity, cfg.BcryptCost)),
		Appointments:   handlers.NewAppointmentHandler(services.NewAppointmentService(uow, activity)),
		Reports:        handlers.NewReportHandler(services.NewReportService(uow), services.NewAdminService(uow)),
		DentalTracking: handlers.NewDentalTrackingHandler(services.NewDentalTrackingService(uow)),
		UserSettings:   handlers.NewUserSettingsHandler(services.NewUserSettingsService(uow)),
		Activity:       handlers.NewActivityHandler(activity),
		Health:         handlers.NewHealthHandler(database.Ping),
	})
	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		logging.LogError(slog.Default(), "unhandled server error", err, "method", c.Method(), "path", c.Path())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.Fail(message))
}
