package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/hirely/pkg/config"
	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/pkg/logx"
	"github.com/Abraxas-365/hirely/pkg/metrics"
	"github.com/Abraxas-365/hirely/recruitment/application/applicationapi"
	"github.com/Abraxas-365/hirely/recruitment/job/jobapi"
	"github.com/Abraxas-365/hirely/recruitment/profilefield/profilefieldapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Configuration and logger
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Failed to load configuration: %v", err)
	}
	logx.SetDevelopment(!cfg.IsProduction())
	logx.SetLevel(logx.ParseLevel(cfg.App.LogLevel))
	defer logx.Sync()
	logx.Infof("Starting %s (%s)...", cfg.App.Name, cfg.App.Environment)

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Create Fiber App with Config
	app := newApp(cfg)

	// 4. Health and metrics
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(c.UserContext()) == nil,
			"redis":  container.Redis.Ping(c.UserContext()).Err() == nil,
		})
	})
	app.Get("/metrics", metrics.Handler())

	// 5. Register Routes

	// /auth/signup, /auth/signin, /auth/signout, /auth/session
	container.AuthHandlers.RegisterRoutes(app, container.AuthMiddleware)

	// /api/profile-fields
	profilefieldapi.RegisterRoutes(app, container.ProfileFieldHandlers, container.AuthMiddleware)

	// /api/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)

	// /api/applications
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)

	// 6. Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	if container.NotificationWorker != nil {
		container.NotificationWorker.Start(workerCtx)
	}

	// 7. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	stopWorkers()
	if container.NotificationWorker != nil {
		container.NotificationWorker.Wait()
	}

	logx.Info("Server exited")
}

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             cfg.Server.BodyLimitMB << 20,
		ReadTimeout:           cfg.Server.ReadTimeout,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	return app
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	if e, ok := errx.As(err); ok {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("%s %s: %v", c.Method(), c.Path(), e)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
