package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"ifc-builder/internal/builder/handlers"
	"ifc-builder/internal/builder/ifc"
	"ifc-builder/internal/common/config"
	"ifc-builder/internal/common/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ============================================================
// Builder Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	store := ifc.NewStore(cfg.ProjectName, ifc.Credentials{
		DevelopersName:          cfg.DevelopersName,
		ApplicationName:         cfg.ApplicationName,
		ApplicationID:           cfg.ApplicationID,
		ApplicationVersion:      cfg.ApplicationVersion,
		EditorsFamilyName:       cfg.EditorsFamilyName,
		EditorsGivenName:        cfg.EditorsGivenName,
		EditorsOrganisationName: cfg.EditorsOrganisationName,
	})
	buildHandler := handlers.NewBuildHandler(store, cfg)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Builder Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.Metrics())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Builder Routes
	// ============================================================

	app.Post("/build", buildHandler.Build)
	app.Get("/model", buildHandler.ModelSummary)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Builder Service on %s (env: %s, project: %s)", addr, cfg.Environment, cfg.ProjectName)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
