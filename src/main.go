package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/contre95/lyrico/src/features/client"
	"github.com/contre95/lyrico/src/features/config"
	"github.com/contre95/lyrico/src/features/hosting"
	"github.com/contre95/lyrico/src/features/logging"
	"github.com/contre95/lyrico/src/features/metrics"
	"github.com/contre95/lyrico/src/infra/providers"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfgManager, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	// Hot-reload config changes so client toggles apply without a restart
	cfgWatcher, err := config.NewWatcher(cfgManager, "config.yaml")
	if err != nil {
		slog.Error("Failed to create config watcher", "error", err)
	} else if err := cfgWatcher.Start(); err != nil {
		slog.Error("Failed to start config watcher", "error", err)
	} else {
		defer cfgWatcher.Stop()
	}

	// Prometheus registry and collectors
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	// The lyrics provider and the orchestrating client around it
	providerCfg := cfgManager.Get().Provider
	lrclib := providers.NewLRCLib(providerCfg.BaseURL, providerCfg.UserAgent)
	clientService := client.NewService(lrclib, cfgManager, recorder)

	// Create and start the Telegram bot if enabled
	var telegramBot *hosting.TelegramBot
	if cfgManager.Get().Telegram.Enabled {
		telegramBot, err = hosting.NewTelegramBot(cfgManager, clientService)
		if err != nil {
			slog.Error("Failed to initialize Telegram bot", "error", err)
		} else {
			go telegramBot.Start()
			slog.Info("Telegram bot started")
		}
	}

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, clientService, registry)
	if err := server.Start(); err != nil {
		slog.Error("server stopped", "error", err)
	}
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfgManager.Get().Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if telegramBot != nil {
		telegramBot.Stop()
		slog.Info("Telegram bot stopped")
	}

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
