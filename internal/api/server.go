package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/seerrdash/internal/api/handlers"
	"github.com/amaumene/seerrdash/internal/api/middleware"
	"github.com/amaumene/seerrdash/internal/config"
	"github.com/amaumene/seerrdash/internal/controllers"
	"github.com/amaumene/seerrdash/internal/models"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server      *http.Server
	db          *models.Database
	syncCtrl    *controllers.SyncController
	actionsCtrl *controllers.ActionsController
	logger      *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, syncCtrl *controllers.SyncController, actionsCtrl *controllers.ActionsController, logger *logrus.Logger) *Server {
	s := &Server{
		db:          db,
		syncCtrl:    syncCtrl,
		actionsCtrl: actionsCtrl,
		logger:      logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("/health", healthHandler.ServeHTTP)

	statusHandler := handlers.NewStatusHandler(s.db, s.logger)
	mux.HandleFunc("/status", statusHandler.ServeHTTP)

	requestsHandler := handlers.NewRequestsHandler(s.syncCtrl, s.logger)
	mux.HandleFunc("GET /api/requests", requestsHandler.ServeHTTP)

	actionsHandler := handlers.NewActionsHandler(s.actionsCtrl, s.logger)
	mux.HandleFunc("DELETE /api/requests/{id}", actionsHandler.Delete)
	mux.HandleFunc("PUT /api/requests/{id}", actionsHandler.UpdateStatus)
	mux.HandleFunc("POST /api/requests/{id}/retrigger", actionsHandler.Retrigger)
	mux.HandleFunc("POST /api/requests/bulk-delete", actionsHandler.BulkDelete)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
