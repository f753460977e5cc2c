package scheduler

import (
	"context"
	"fmt"

	"github.com/amaumene/seerrdash/internal/controllers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler keeps the enrichment cache warm by running the synchronizer
// periodically, so interactive dashboard calls mostly hit fresh entries.
type Scheduler struct {
	cron        *cron.Cron
	syncCtrl    *controllers.SyncController
	warmMinutes int
	logger      *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(syncCtrl *controllers.SyncController, warmMinutes int, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		syncCtrl:    syncCtrl,
		warmMinutes: warmMinutes,
		logger:      logger,
	}
}

// Start starts the scheduler. A warm interval of 0 disables it.
func (s *Scheduler) Start() error {
	if s.warmMinutes <= 0 {
		s.logger.Info("Cache warming disabled")
		return nil
	}

	s.logger.WithField("interval_minutes", s.warmMinutes).Info("Starting scheduler")

	schedule := fmt.Sprintf("@every %dm", s.warmMinutes)
	_, err := s.cron.AddFunc(schedule, func() {
		s.runWarm()
	})
	if err != nil {
		return fmt.Errorf("failed to add cache warm job: %w", err)
	}

	s.cron.Start()

	// Warm once at startup so the first dashboard load is fast
	go s.runWarm()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runWarm executes one cache warm pass
func (s *Scheduler) runWarm() {
	s.logger.Debug("Running cache warm")

	result, err := s.syncCtrl.ListEnrichedRequests(context.Background(), controllers.ListOptions{})
	if err != nil {
		s.logger.WithError(err).Error("Cache warm failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"total":    result.Pagination.Total,
		"warnings": len(result.Warnings),
		"dropped":  result.Dropped,
	}).Info("Cache warm completed")
}
