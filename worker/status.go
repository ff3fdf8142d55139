package worker

import (
	"greenroute-backend/models"
	"sync"
	"time"
)

// StatusManager tracks the worker state and the outcome of the last check
type StatusManager struct {
	mu        sync.RWMutex
	status    models.WorkerStatus
	lastRun   *models.WeatherCheckResult
	lastError string
	runs      int
	updatedAt time.Time
}

func NewStatusManager() *StatusManager {
	return &StatusManager{status: models.StatusIdle, updatedAt: time.Now()}
}

func (sm *StatusManager) SetStatus(status models.WorkerStatus) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.status = status
	sm.updatedAt = time.Now()
}

// RecordRun stores the result of a finished check
func (sm *StatusManager) RecordRun(result *models.WeatherCheckResult, err error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.runs++
	sm.lastRun = result
	sm.updatedAt = time.Now()
	if err != nil {
		sm.lastError = err.Error()
		sm.status = models.StatusFailed
		return
	}
	sm.lastError = ""
	sm.status = models.StatusComplete
}

func (sm *StatusManager) Status() models.WorkerStatus {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.status
}

// Snapshot returns a health summary for monitoring
func (sm *StatusManager) Snapshot() map[string]interface{} {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := map[string]interface{}{
		"status":     string(sm.status),
		"healthy":    sm.status != models.StatusFailed,
		"runs":       sm.runs,
		"updated_at": sm.updatedAt,
	}
	if sm.lastError != "" {
		out["error_message"] = sm.lastError
	}
	if sm.lastRun != nil {
		out["last_run"] = sm.lastRun.StartTime
		out["suggestions"] = sm.lastRun.Suggestions
		out["organizations"] = sm.lastRun.Organizations
		out["duration"] = sm.lastRun.Duration.String()
	}
	return out
}
