package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/slipwaylabs/slipway/internal/adapters/builder"
	"github.com/slipwaylabs/slipway/internal/adapters/docker"
	"github.com/slipwaylabs/slipway/internal/adapters/http"
	"github.com/slipwaylabs/slipway/internal/config"
)

func main() {
	// 1. Configuration: read once at startup, passed down explicitly.
	cfg := config.FromEnv()

	// 2. Initialize Adapters (Infrastructure)
	dockerAdapter, err := docker.NewAdapter(cfg.AppPort)
	if err != nil {
		log.Fatalf("Failed to initialize Docker adapter: %v", err)
	}

	builderAdapter, err := builder.NewAdapter(cfg.AppPort)
	if err != nil {
		log.Fatalf("Failed to initialize builder adapter: %v", err)
	}

	// 3. Initialize HTTP Handlers (Interface Adapters)
	appHandler := http.NewAppHandler(dockerAdapter, builderAdapter)
	proxyHandler := http.NewProxyHandler(dockerAdapter, cfg.Domain, cfg.AppPort)

	// 4. Setup Framework (Fiber)
	app := fiber.New()

	// Subdomain proxy runs first so myapp.<domain> requests never hit
	// the API routes.
	app.Use(proxyHandler.ProxyRequest)

	// 5. Define Routes
	app.Get("/healthz", appHandler.Healthz)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	apps := v1.Group("/apps")
	apps.Get("/", appHandler.ListApps)
	apps.Post("/", appHandler.CreateApp)
	apps.Delete("/:id", appHandler.StopApp)
	apps.Get("/:id/logs", appHandler.GetAppLogs)

	// 6. Start Server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
