package hosting

import (
	"fmt"
	"log/slog"

	"github.com/contre95/lyrico/src/features/client"
	"github.com/contre95/lyrico/src/features/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server exposing the lyrics client API.
func NewServer(cfg *config.Manager, clientService *client.Service, registry *prometheus.Registry) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
		AppName:               "Lyrico",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(RequestIDMiddleware())
	app.Use(RequestLogMiddleware())

	clientHandler := client.NewHandler(clientService)
	client.RegisterRoutes(app, clientHandler)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "provider": clientService.ProviderName()})
	})

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// Start starts the HTTP server in a background goroutine.
func (s *Server) Start() error {
	go func() {
		if err := s.app.Listen(fmt.Sprintf(":%d", s.port)); err != nil {
			slog.Error("Server stopped", "error", err)
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
