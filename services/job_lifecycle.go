package services

import (
	"fmt"
	"greenroute-backend/models"
	"strings"
	"time"
)

// The functions in this file mutate a job in place and perform no I/O. Callers run
// them inside applyOptimistic so a failed write restores the previous state.

func refuse(job *models.Job, event JobEvent) error {
	return &TransitionError{JobID: job.JobID, Current: job.Status, Event: event}
}

// Accept schedules a pending lead. An address is required.
func Accept(job *models.Job, date time.Time, now time.Time) error {
	if job.Status != models.JobStatusPending {
		return refuse(job, EventAccept)
	}
	if strings.TrimSpace(job.Address) == "" {
		return newValidationError("address", "an address is required before a lead can be scheduled")
	}
	if date.IsZero() {
		return newValidationError("scheduledDate", "a scheduled date is required")
	}
	d := date
	job.Status = models.JobStatusScheduled
	job.ScheduledDate = &d
	job.UpdatedAt = now
	return nil
}

// Reject cancels a pending lead without assigning a date
func Reject(job *models.Job, now time.Time) error {
	if job.Status != models.JobStatusPending {
		return refuse(job, EventReject)
	}
	job.Status = models.JobStatusCancelled
	job.UpdatedAt = now
	return nil
}

// Cancel cancels a scheduled job
func Cancel(job *models.Job, now time.Time) error {
	if job.Status != models.JobStatusScheduled {
		return refuse(job, EventCancel)
	}
	job.Status = models.JobStatusCancelled
	job.UpdatedAt = now
	return nil
}

// Complete finishes a scheduled job: the timer is stopped, the completion date set and
// payment reset to unpaid.
func Complete(job *models.Job, now time.Time) error {
	if job.Status != models.JobStatusScheduled {
		return refuse(job, EventComplete)
	}
	if job.IsTimerRunning {
		if err := StopTimer(job, now); err != nil {
			return err
		}
	}
	completed := now
	job.Status = models.JobStatusCompleted
	job.CompletedDate = &completed
	job.PaymentStatus = models.PaymentStatusUnpaid
	job.UpdatedAt = now
	return nil
}

// TogglePayment flips paid and unpaid on a completed job and returns the new status
func TogglePayment(job *models.Job, now time.Time) (models.PaymentStatus, error) {
	if job.Status != models.JobStatusCompleted {
		return "", refuse(job, EventTogglePayment)
	}
	if job.PaymentStatus == models.PaymentStatusPaid {
		job.PaymentStatus = models.PaymentStatusUnpaid
	} else {
		job.PaymentStatus = models.PaymentStatusPaid
	}
	job.UpdatedAt = now
	return job.PaymentStatus, nil
}

// RainDelay moves a scheduled job to newDate and appends a system note
func RainDelay(job *models.Job, newDate time.Time, now time.Time) error {
	if job.Status != models.JobStatusScheduled {
		return refuse(job, EventRainDelay)
	}
	d := newDate
	job.ScheduledDate = &d
	job.IsRainDelayed = true
	job.Notes = appendNote(job.Notes, fmt.Sprintf("[System] Rescheduled due to rain to %s", newDate.Format("2006-01-02")))
	job.UpdatedAt = now
	return nil
}

// NextRecurrence builds the follow-up job for a completed recurring job. It returns
// nil for one-off jobs.
func NextRecurrence(job *models.Job, newID string, now time.Time) *models.Job {
	next, ok := job.Frequency.Next(now)
	if !ok {
		return nil
	}
	return &models.Job{
		JobID:              newID,
		OrgID:              job.OrgID,
		CustomerID:         job.CustomerID,
		CustomerName:       job.CustomerName,
		CustomerEmail:      job.CustomerEmail,
		CustomerPhone:      job.CustomerPhone,
		Address:            job.Address,
		Postcode:           job.Postcode,
		Zone:               job.Zone,
		LawnSize:           job.LawnSize,
		Frequency:          job.Frequency,
		Extras:             append([]string(nil), job.Extras...),
		PriceQuote:         job.PriceQuote,
		DurationMinutes:    job.DurationMinutes,
		Status:             models.JobStatusScheduled,
		ScheduledDate:      &next,
		LeadSource:         job.LeadSource,
		RouteOrder:         job.RouteOrder,
		RecurringFromJobID: job.JobID,
		Notes:              fmt.Sprintf("Auto-generated from job %s", job.JobID),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func appendNote(notes, line string) string {
	if strings.TrimSpace(notes) == "" {
		return line
	}
	return notes + "\n" + line
}
