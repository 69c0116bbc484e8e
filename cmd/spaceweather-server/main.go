package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"

	httpapi "github.com/i474232898/spaceweather-forecast/internal/api/http"
	"github.com/i474232898/spaceweather-forecast/internal/config"
	"github.com/i474232898/spaceweather-forecast/internal/observability"
	"github.com/i474232898/spaceweather-forecast/internal/scheduler"
	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
	"github.com/i474232898/spaceweather-forecast/internal/spaceweather/feeds"
	"github.com/i474232898/spaceweather-forecast/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// One fetch client for the whole process; closed on shutdown.
	client := feeds.NewClient(cfg.ClientConfig(), log, metrics)
	defer client.Close()

	service := spaceweather.NewService(spaceweather.Sources{
		Kp:        feeds.NewKpFeed(client, cfg.KpURL),
		SolarWind: feeds.NewSolarWindFeed(client, cfg.SolarWindURL),
		XRay:      feeds.NewXRayFeed(client, cfg.XRayURL),
	}, clock, log, metrics)

	// Latest observation only, refreshed by the scheduler.
	memStore := store.NewMemoryStore(cfg.SnapshotMaxAge, clock)

	sched := scheduler.New(cfg.RefreshInterval, service, memStore, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "spaceweather-forecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New(logger.Config{Output: os.Stderr}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "spaceweather-forecast",
		})
	})

	httpapi.RegisterRoutes(app, service, memStore, cfg.ObserverLatitude)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()
	log.Info("http server starting", "port", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
