package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/mailer"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/bank"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/education"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/modules/personal"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/hr-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logging.Setup()

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()

	mods := []modules.Module{
		personal.New(),
		bank.New(),
		education.New(),
	}
	if err := database.Migrate(db, modules.OwnedModels(mods)...); err != nil {
		return err
	}
	for _, m := range mods {
		slog.Info("module ready", "module", m.ID(), "models", len(m.Models()))
	}

	// ERROR+ records also go to system_logs from here on.
	pgLog := logging.WithDatabase(db)
	defer pgLog.Stop()
	go logging.RunCleanup(ctx, db)

	uploads, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("upload storage: %w", err)
	}

	var notifier services.Notifier
	if cfg.MailEnabled() {
		notifier = mailer.NewClient(cfg)
	} else {
		slog.Info("SMTP not configured, leave notifications disabled")
	}

	audit := services.NewAuditService(db)
	users := services.NewUserService(db, audit, modules.OwnedModels(mods)...)
	assignments := services.NewAssignmentService(db, audit)
	leaves := services.NewLeaveService(db, audit, notifier)

	if cfg.AdminEmail != "" {
		if err := users.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}

	if initSentry() {
		defer sentry.Flush(2 * time.Second)
	}

	app := newApp(cfg)
	if local, ok := uploads.(*storage.Local); ok {
		app.Static("/uploads", local.Dir())
	}
	routes.Setup(app, cfg, db, routes.Handlers{
		Auth:       handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		Health:     handlers.NewHealthHandler(db),
		User:       handlers.NewUserHandler(users, db),
		Assignment: handlers.NewAssignmentHandler(assignments),
		Leave:      handlers.NewLeaveHandler(leaves, db),
		Profile:    handlers.NewProfileHandler(services.NewProfileService(db, users, assignments), db),
		Audit:      handlers.NewAuditHandler(audit),
		Upload:     handlers.NewUploadHandler(uploads),
	}, mods)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
	return nil
}

// initSentry enables error tracking when SENTRY_DSN is set.
func initSentry() bool {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return false
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
		Environment:      os.Getenv("APP_ENV"),
	})
	if err != nil {
		slog.Error("sentry init failed", "error", err)
		return false
	}
	return true
}

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "hr-backend",
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		c.Set(fiber.HeaderXFrameOptions, "DENY")
		return c.Next()
	})
	return app
}
