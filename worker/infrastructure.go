package worker

import (
	"context"
	"fmt"
	"greenroute-backend/dal"
	"greenroute-backend/infrastructure"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
	"time"
)

const (
	setupMaxRetries        = 5
	setupRetryDelay        = 2 * time.Second
	setupBackoffMultiplier = 2.0
)

// InfrastructureSetup creates the tables the API needs before the first request
type InfrastructureSetup struct {
	Config   *models.Config
	Logger   logger.Logger
	DBClient dal.DatabaseClientInterface

	retryDelay time.Duration
}

func NewInfrastructureSetup(cfg *models.Config, db dal.DatabaseClientInterface, log logger.Logger) *InfrastructureSetup {
	return &InfrastructureSetup{
		Config:     cfg,
		Logger:     log,
		DBClient:   db,
		retryDelay: setupRetryDelay,
	}
}

// Execute ensures every configured table exists, retrying with exponential backoff
func (is *InfrastructureSetup) Execute(ctx context.Context) error {
	is.Logger.Infof("Ensuring tables %v", is.Config.Tables)

	delay := is.retryDelay
	var lastErr error
	for attempt := 1; attempt <= setupMaxRetries; attempt++ {
		lastErr = infrastructure.EnsureTables(ctx, is.DBClient, is.Config, is.Logger)
		if lastErr == nil {
			is.Logger.Info("Table setup complete")
			return nil
		}

		is.Logger.Warnf("Table setup attempt %d/%d failed: %v", attempt, setupMaxRetries, lastErr)
		if attempt == setupMaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * setupBackoffMultiplier)
	}

	return fmt.Errorf("table setup failed after %d attempts: %w", setupMaxRetries, lastErr)
}
