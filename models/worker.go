package models

import "time"

// WorkerConfig holds configuration for the background worker
type WorkerConfig struct {
	// Cron schedule for the daily mowability check
	CronSchedule string `json:"cron_schedule"`

	LockFilePath string        `json:"lock_file_path"`
	LockTimeout  time.Duration `json:"lock_timeout"`

	// Tables to ensure on startup (DynamoDB only)
	RequiredTables []string `json:"required_tables"`
	RunOnStart     bool     `json:"run_on_start"`
}

// LockInfo represents lock file contents
type LockInfo struct {
	ID         string    `json:"id"`
	Owner      string    `json:"owner"`
	AcquiredAt time.Time `json:"acquired_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type WorkerStatus string

const (
	StatusIdle     WorkerStatus = "idle"
	StatusRunning  WorkerStatus = "running"
	StatusStopped  WorkerStatus = "stopped"
	StatusFailed   WorkerStatus = "failed"
	StatusComplete WorkerStatus = "completed"
)

// WeatherCheckResult summarises one pass of the daily mowability check.
type WeatherCheckResult struct {
	StartTime     time.Time     `json:"start_time"`
	Duration      time.Duration `json:"duration"`
	Organizations int           `json:"organizations"`
	Suggestions   int           `json:"suggestions"`
	Skipped       int           `json:"skipped"`
	Errors        []string      `json:"errors,omitempty"`
}
