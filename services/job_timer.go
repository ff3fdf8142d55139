package services

import (
	"greenroute-backend/models"
	"time"
)

// StartTimer begins a work session. Terminal jobs and running timers are refused.
func StartTimer(job *models.Job, now time.Time) error {
	if job.Status.IsTerminal() {
		return &TransitionError{JobID: job.JobID, Current: job.Status, Event: EventStartTimer}
	}
	if job.IsTimerRunning {
		return newValidationError("isTimerRunning", "timer is already running")
	}
	start := now
	job.IsTimerRunning = true
	job.TimerStartTime = &start
	return nil
}

// StopTimer ends the running session and adds its length to ActualDurationMinutes
func StopTimer(job *models.Job, now time.Time) error {
	if !job.IsTimerRunning || job.TimerStartTime == nil {
		return newValidationError("isTimerRunning", "timer is not running")
	}
	job.ActualDurationMinutes += sessionMinutes(*job.TimerStartTime, now)
	job.IsTimerRunning = false
	job.TimerStartTime = nil
	return nil
}

// ElapsedMinutes is the accumulated time plus the running session, if any
func ElapsedMinutes(job *models.Job, now time.Time) float64 {
	if !job.IsTimerRunning || job.TimerStartTime == nil {
		return job.ActualDurationMinutes
	}
	return job.ActualDurationMinutes + sessionMinutes(*job.TimerStartTime, now)
}

func sessionMinutes(start, now time.Time) float64 {
	ms := now.Sub(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return float64(ms) / 60000
}
