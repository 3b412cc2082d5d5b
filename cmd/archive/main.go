package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"ifc-builder/internal/archive/handlers"
	"ifc-builder/internal/archive/repository"
	"ifc-builder/internal/archive/service"
	"ifc-builder/internal/common/config"
	"ifc-builder/internal/common/middleware"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ============================================================
// Archive Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	dbPath := getenv("ARCHIVE_DB_PATH", "data/db/archive.db")
	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), "migrations/001_init_archive.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	sessionManager := service.NewSessionManager()
	fileStorage := service.NewFileStorage(getenv("ARCHIVE_ROOT", "data/archive"))
	builderURL := getenv("BUILDER_URL", "http://localhost:3001")
	builderClient := service.NewBuilderClient(builderURL)
	archiveHandler := handlers.NewArchiveHandler(repo, sessionManager, fileStorage, builderClient)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Archive Service",
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
		if err := db.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db unreachable"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Archive Routes
	// ============================================================

	app.Post("/login", archiveHandler.Login)
	app.Post("/logout", archiveHandler.Logout)
	app.Get("/clients/:id", archiveHandler.GetClient)
	app.Post("/clients/:id/builds", archiveHandler.SubmitBuild)
	app.Get("/clients/:id/builds", archiveHandler.ListBuilds)
	app.Get("/clients/:id/builds/:build/model", archiveHandler.GetModel)
	app.Get("/clients/:id/builds/:build/report", archiveHandler.GetReport)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Archive Service on %s (env: %s, builder: %s)", addr, cfg.Environment, builderURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getenv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
