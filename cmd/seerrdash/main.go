package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/amaumene/seerrdash/internal/api"
	"github.com/amaumene/seerrdash/internal/config"
	"github.com/amaumene/seerrdash/internal/controllers"
	"github.com/amaumene/seerrdash/internal/models"
	"github.com/amaumene/seerrdash/internal/scheduler"
	"github.com/amaumene/seerrdash/internal/services/overseerr"
	"github.com/amaumene/seerrdash/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Seerrdash")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize enrichment cache
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Enrichment cache initialized")

	// 4. Initialize Overseerr client
	overseerrClient, err := overseerr.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize Overseerr client: %w", err)
	}
	logger.Info("Overseerr client initialized")

	// 5. Initialize controllers
	syncCtrl := controllers.NewSyncController(db, overseerrClient, overseerrClient, cfg.RefreshBatchSize, cfg.ListPageSize, logger)
	actionsCtrl := controllers.NewActionsController(overseerrClient, logger)
	logger.Info("Controllers initialized")

	// 6. Initialize scheduler
	sched := scheduler.NewScheduler(syncCtrl, cfg.CacheWarmMinutes, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 7. Initialize HTTP server
	server := api.NewServer(cfg, db, syncCtrl, actionsCtrl, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 8. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Seerrdash is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("Seerrdash stopped")
	return nil
}
