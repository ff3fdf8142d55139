package worker

import (
	"context"
	"fmt"
	"greenroute-backend/dal"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
)

// Service wraps the worker for easy integration
type Service struct {
	worker *Worker
	logger logger.Logger
}

// NewService creates a new worker service
func NewService(cfg *models.Config, db dal.DatabaseClientInterface, checker MowabilityChecker, log logger.Logger) (*Service, error) {
	w, err := NewWorker(cfg, db, checker, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather worker: %w", err)
	}
	return &Service{worker: w, logger: log}, nil
}

// StartInBackground starts the worker in its own goroutine
func (s *Service) StartInBackground(ctx context.Context) {
	s.logger.Info("Starting weather worker service in background")
	go func() {
		if err := s.worker.Start(ctx); err != nil {
			s.logger.Errorf("Weather worker failed to start: %v", err)
		}
	}()
}

func (s *Service) Stop() error {
	s.logger.Info("Stopping weather worker service")
	return s.worker.Stop()
}

// GetHealthStatus returns a health status for monitoring
func (s *Service) GetHealthStatus() map[string]interface{} {
	status := s.worker.status.Snapshot()
	status["worker_running"] = s.worker.IsRunning()
	status["schedule"] = s.worker.workerConfig.CronSchedule
	return status
}
