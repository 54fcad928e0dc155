package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Hawkeyeeye/smart-farmer/internal/access"
	httpapi "github.com/Hawkeyeeye/smart-farmer/internal/api/http"
	"github.com/Hawkeyeeye/smart-farmer/internal/config"
	"github.com/Hawkeyeeye/smart-farmer/internal/dashboard"
	"github.com/Hawkeyeeye/smart-farmer/internal/farm"
	"github.com/Hawkeyeeye/smart-farmer/internal/farm/providers"
	"github.com/Hawkeyeeye/smart-farmer/internal/scheduler"
	"github.com/Hawkeyeeye/smart-farmer/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Upstream weather providers; order is preference order. Readings
	// degrade to synthetic data when none succeed.
	var provs []farm.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	provs = append(provs, providers.NewOpenMeteoProvider(httpClient, cfg.GeocoderAPIKey))

	gen := farm.NewGenerator(time.Now().UnixNano())
	history := store.NewHistory(cfg.HistoryCapacity)
	hub := dashboard.NewHub()
	session := access.NewSession(access.PlanFree)

	service := dashboard.NewService(provs, gen, history, hub, dashboard.FarmProfile{
		Location:      cfg.Location,
		BaseYieldKgHa: cfg.BaseYieldKgHa,
		FieldSizeHa:   cfg.FieldSizeHa,
		PlantingDate:  cfg.PlantingDate,
	})

	// First cycle immediately so the dashboard endpoint has data before
	// the first scheduled tick.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		service.Refresh(ctx)
	}()

	sched := scheduler.New(cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "smart-farmer",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "smart-farmer",
		})
	})

	httpapi.RegisterRoutes(app, service, session, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
