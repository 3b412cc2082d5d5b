package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"ifc-builder/internal/common/config"
	"ifc-builder/internal/common/middleware"
	"ifc-builder/internal/gateway/handlers"
	"ifc-builder/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load()

	builderURL := getEnv("BUILDER_URL", "http://localhost:3001")
	archiveURL := getEnv("ARCHIVE_URL", "http://localhost:3002")

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "IFC Builder Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())
	app.Use(middleware.Metrics())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(map[string]string{
		"builder": builderURL,
		"archive": archiveURL,
	}))
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// Docs & Metrics
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI)
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "IFC Builder Gateway v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	// Builder Service
	api.Post("/build", proxy.ProxyTo(builderURL+"/build"))
	api.Get("/model", proxy.ProxyTo(builderURL+"/model"))

	// Archive Service
	api.Post("/login", proxy.ProxyTo(archiveURL+"/login"))
	api.Post("/logout", proxy.ProxyTo(archiveURL+"/logout"))
	api.Get("/clients/:id", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/clients/%s", archiveURL, c.Params("id")))
	})
	api.Post("/clients/:id/builds", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/clients/%s/builds", archiveURL, c.Params("id")))
	})
	api.Get("/clients/:id/builds", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/clients/%s/builds", archiveURL, c.Params("id")))
	})
	api.Get("/clients/:id/builds/:build/model", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/clients/%s/builds/%s/model", archiveURL, c.Params("id"), c.Params("build")))
	})
	api.Get("/clients/:id/builds/:build/report", func(c fiber.Ctx) error {
		return proxy.Forward(c, fmt.Sprintf("%s/clients/%s/builds/%s/report", archiveURL, c.Params("id"), c.Params("build")))
	})

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting IFC Builder Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /build to %s, archive to %s", builderURL, archiveURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
