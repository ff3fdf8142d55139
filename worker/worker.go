package worker

import (
	"context"
	"errors"
	"fmt"
	"greenroute-backend/dal"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"
)

const checkTimeout = 15 * time.Minute

// MowabilityChecker runs one pass of the daily weather check
type MowabilityChecker interface {
	CheckMowability(ctx context.Context) (*models.WeatherCheckResult, error)
}

// Worker schedules the daily mowability check and bootstraps tables on start
type Worker struct {
	config       *models.Config
	workerConfig *models.WorkerConfig
	logger       logger.Logger
	cronJob      *cron.Cron
	checker      MowabilityChecker
	setup        *InfrastructureSetup
	lock         *LockManager
	status       *StatusManager
	ownerID      string

	mu        sync.Mutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewWorker(cfg *models.Config, db dal.DatabaseClientInterface, checker MowabilityChecker, log logger.Logger) (*Worker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if checker == nil {
		return nil, fmt.Errorf("checker cannot be nil")
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname = "localhost"
	}
	ownerID := fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8])

	lockPath := cfg.WorkerLockPath
	if lockPath == "" {
		lockPath = fmt.Sprintf("%s/greenroute-weather-%s.lock", os.TempDir(), cfg.AppEnv)
	}

	workerConfig := &models.WorkerConfig{
		CronSchedule:   cfg.WeatherCheckSchedule,
		LockFilePath:   lockPath,
		LockTimeout:    30 * time.Minute,
		RequiredTables: cfg.Tables,
		RunOnStart:     cfg.AppEnv != "development",
	}
	if err := validateWorkerConfig(workerConfig); err != nil {
		return nil, fmt.Errorf("invalid worker configuration: %w", err)
	}

	w := &Worker{
		config:       cfg,
		workerConfig: workerConfig,
		logger:       log,
		cronJob:      cron.New(),
		checker:      checker,
		lock:         NewLockManager(workerConfig.LockFilePath, workerConfig.LockTimeout),
		status:       NewStatusManager(),
		ownerID:      ownerID,
	}
	if db != nil && cfg.DatabaseDriver == "dynamodb" {
		w.setup = NewInfrastructureSetup(cfg, db, log)
	}
	return w, nil
}

func validateWorkerConfig(c *models.WorkerConfig) error {
	if c.CronSchedule == "" {
		return fmt.Errorf("cron schedule is required")
	}
	if _, err := cron.Parse(c.CronSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", c.CronSchedule, err)
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("lock timeout must be positive")
	}
	return nil
}

// Start ensures tables exist and schedules the daily check
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("worker is already running")
	}

	w.ctx, w.cancel = context.WithCancel(ctx)

	if w.setup != nil {
		if err := w.setup.Execute(w.ctx); err != nil {
			w.cancel()
			w.status.SetStatus(models.StatusFailed)
			return fmt.Errorf("infrastructure setup: %w", err)
		}
	}

	if err := w.cronJob.AddFunc(w.workerConfig.CronSchedule, w.runScheduled); err != nil {
		w.cancel()
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	w.cronJob.Start()
	w.isRunning = true
	w.status.SetStatus(models.StatusRunning)

	w.logger.Infof("Weather worker %s started with schedule %s", w.ownerID, w.workerConfig.CronSchedule)

	if w.workerConfig.RunOnStart {
		go w.runScheduled()
	}
	return nil
}

func (w *Worker) runScheduled() {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Errorf("Weather check panicked: %v", r)
			w.status.RecordRun(nil, fmt.Errorf("panic: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(w.ctx, checkTimeout)
	defer cancel()

	if _, err := w.RunCheck(ctx); err != nil && !errors.Is(err, ErrLockHeld) {
		w.logger.Errorf("Weather check failed: %v", err)
	}
}

// RunCheck runs the mowability check once under the lock file
func (w *Worker) RunCheck(ctx context.Context) (*models.WeatherCheckResult, error) {
	if err := w.lock.CleanupExpiredLocks(); err != nil {
		w.logger.Warnf("Failed to clean up expired lock: %v", err)
	}
	lockInfo, err := w.lock.AcquireLock(w.ownerID)
	if err != nil {
		w.logger.Infof("Skipping weather check: %v", err)
		return nil, err
	}
	defer func() {
		if err := w.lock.ReleaseLock(lockInfo); err != nil {
			w.logger.Warnf("Failed to release lock: %v", err)
		}
	}()

	w.logger.Info("Running daily mowability check")
	result, err := w.checker.CheckMowability(ctx)
	w.status.RecordRun(result, err)
	if err != nil {
		return result, err
	}

	w.logger.WithFields(map[string]interface{}{
		"organizations": result.Organizations,
		"suggestions":   result.Suggestions,
		"skipped":       result.Skipped,
	}).Info("Mowability check finished")
	return result, nil
}

// Stop halts the scheduler. Running checks are cancelled.
func (w *Worker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isRunning {
		return nil
	}
	w.cronJob.Stop()
	w.cancel()
	w.isRunning = false
	w.status.SetStatus(models.StatusStopped)
	w.logger.Info("Weather worker stopped")
	return nil
}

func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}
