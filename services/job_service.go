package services

import (
	"context"
	"errors"
	"fmt"
	"greenroute-backend/models"
	"greenroute-backend/repository"
	"greenroute-backend/utils"
	"greenroute-backend/utils/logger"
	"greenroute-backend/utils/metrics"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds concurrent writes in rain-delay and reorder batches
const batchConcurrency = 8

type JobService struct {
	jobRepo  repository.JobRepositoryInterface
	logRepo  repository.SystemLogRepositoryInterface
	settings SettingsServiceInterface
	notifier NotifierInterface
	book     *JobBook
	logger   logger.Logger
	now      func() time.Time
}

// NewJobService wires the job lifecycle. notifier may be nil.
func NewJobService(
	jobRepo repository.JobRepositoryInterface,
	logRepo repository.SystemLogRepositoryInterface,
	settings SettingsServiceInterface,
	notifier NotifierInterface,
	logger logger.Logger,
) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		logRepo:  logRepo,
		settings: settings,
		notifier: notifier,
		book:     NewJobBook(jobRepo),
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock replaces the time source
func (s *JobService) SetClock(now func() time.Time) {
	s.now = now
}

func orgLocation(settings *models.BusinessSettings) *time.Location {
	if settings == nil || settings.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(settings.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// OrgDate keeps the calendar date of t as written and places it at midnight in loc
func OrgDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func (s *JobService) today(settings *models.BusinessSettings) time.Time {
	return s.now().In(orgLocation(settings))
}

func (s *JobService) audit(ctx context.Context, job *models.Job, event models.SystemEvent, oldStatus models.JobStatus, message string) (*models.SystemLog, error) {
	entry := &models.SystemLog{
		OrgID:      job.OrgID,
		CustomerID: job.CustomerID,
		JobID:      job.JobID,
		Event:      event,
		OldStatus:  oldStatus,
		NewStatus:  job.Status,
		Message:    message,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.logRepo.AppendLog(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// saveWithAudit writes the job and its audit record. When the audit write fails the
// job write is compensated by saving before again.
func (s *JobService) saveWithAudit(ctx context.Context, before, job *models.Job, event models.SystemEvent, message string) error {
	if err := s.jobRepo.SaveJob(ctx, job); err != nil {
		return err
	}
	if event == "" {
		return nil
	}
	if _, err := s.audit(ctx, job, event, before.Status, message); err != nil {
		if cerr := s.jobRepo.SaveJob(ctx, before); cerr != nil {
			s.logger.Errorf("Failed to restore job %s after audit failure: %v", job.JobID, cerr)
		}
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}

func recordOutcome(event JobEvent, err error) {
	switch {
	case err == nil:
		metrics.JobTransitions.WithLabelValues(string(event), "ok").Inc()
	case errors.Is(err, ErrPersistence):
		metrics.JobTransitions.WithLabelValues(string(event), "persistence_failure").Inc()
		metrics.JobRollbacks.WithLabelValues(string(event)).Inc()
	case errors.Is(err, ErrInvalidTransition):
		metrics.JobTransitions.WithLabelValues(string(event), "invalid_transition").Inc()
	default:
		metrics.JobTransitions.WithLabelValues(string(event), "rejected").Inc()
	}
}

// mutateJob runs an optimistic update against one job. audit selects the system log
// event written alongside the job; an empty event writes the job only.
func (s *JobService) mutateJob(
	ctx context.Context,
	orgID, jobID string,
	event JobEvent,
	updatedBy string,
	mutate func(*models.Job) error,
	audit func(before, after *models.Job) (models.SystemEvent, string),
) (*models.Job, error) {
	var result *models.Job
	err := s.book.With(ctx, orgID, func(o *orgJobs) error {
		job := o.find(jobID)
		if job == nil {
			return ErrJobNotFound
		}
		before := job.Clone()

		err := applyOptimistic(job, (*models.Job).Clone,
			func(j *models.Job) error {
				if err := mutate(j); err != nil {
					return err
				}
				j.UpdatedAt = s.now().UTC()
				j.UpdatedBy = updatedBy
				return nil
			},
			func(j *models.Job) error {
				var ev models.SystemEvent
				var msg string
				if audit != nil {
					ev, msg = audit(before, j)
				}
				return s.saveWithAudit(ctx, before, j, ev, msg)
			},
		)
		if err != nil {
			return err
		}
		result = job.Clone()
		return nil
	})

	recordOutcome(event, err)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"org_id": orgID,
			"job_id": jobID,
			"event":  string(event),
		}).Warnf("Job update refused: %v", err)
		return nil, err
	}
	return result, nil
}

func statusAudit(before, after *models.Job) (models.SystemEvent, string) {
	if before.Status == after.Status {
		return "", ""
	}
	return models.EventStatusChanged, fmt.Sprintf("Status changed from %s to %s", before.Status, after.Status)
}

// CreateJob creates a lead (pending) or, when a date is supplied with status scheduled,
// a scheduled job
func (s *JobService) CreateJob(ctx context.Context, orgID string, req *models.CreateJobRequest, createdBy string) (*models.Job, error) {
	if err := validateCreateJob(orgID, req); err != nil {
		recordOutcome(EventCreate, err)
		return nil, err
	}

	now := s.now().UTC()
	job := &models.Job{
		JobID:           utils.GenerateUUID(),
		OrgID:           orgID,
		CustomerID:      req.CustomerID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Address:         strings.TrimSpace(req.Address),
		Postcode:        req.Postcode,
		Zone:            req.Zone,
		LawnSize:        req.LawnSize,
		Frequency:       req.Frequency,
		Extras:          append([]string(nil), req.Extras...),
		Notes:           req.Notes,
		PriceQuote:      round2(req.PriceQuote),
		DurationMinutes: req.DurationMinutes,
		Status:          models.JobStatusPending,
		LeadSource:      req.LeadSource,
		CreatedAt:       now,
		UpdatedAt:       now,
		UpdatedBy:       createdBy,
	}
	if job.CustomerID == "" {
		job.CustomerID = utils.GenerateUUID()
	}
	if job.LeadSource == "" {
		job.LeadSource = "admin"
	}

	event := models.EventLeadCreated
	if req.Status == models.JobStatusScheduled {
		settings, err := s.settings.GetSettings(ctx, orgID)
		if err != nil {
			return nil, err
		}
		d := OrgDate(*req.ScheduledDate, orgLocation(settings))
		job.Status = models.JobStatusScheduled
		job.ScheduledDate = &d
		event = models.EventJobCreated
	}

	return s.insertJob(ctx, job, event)
}

func (s *JobService) insertJob(ctx context.Context, job *models.Job, event models.SystemEvent) (*models.Job, error) {
	var result *models.Job
	err := s.book.With(ctx, job.OrgID, func(o *orgJobs) error {
		job.RouteOrder = o.nextRouteOrder()
		if _, err := s.jobRepo.CreateJob(ctx, job); err != nil {
			return persistenceError("create job", err)
		}
		msg := fmt.Sprintf("Job created for %s", job.CustomerName)
		if _, err := s.audit(ctx, job, event, "", msg); err != nil {
			if derr := s.jobRepo.DeleteJob(ctx, job.OrgID, job.JobID); derr != nil {
				s.logger.Errorf("Failed to remove job %s after audit failure: %v", job.JobID, derr)
			}
			return persistenceError("audit log", err)
		}
		o.jobs = append(o.jobs, job)
		result = job.Clone()
		return nil
	})

	recordOutcome(EventCreate, err)
	if err != nil {
		s.logger.Errorf("Failed to create job for org %s: %v", job.OrgID, err)
		return nil, err
	}
	s.logger.Infof("Job %s created for org %s with status %s", result.JobID, result.OrgID, result.Status)
	return result, nil
}

func validateCreateJob(orgID string, req *models.CreateJobRequest) error {
	if req == nil {
		return newValidationError("request", "job request is required")
	}
	if strings.TrimSpace(orgID) == "" {
		return newValidationError("orgID", "organization ID is required")
	}
	if len(strings.TrimSpace(req.CustomerName)) < 2 {
		return newValidationError("customerName", "customer name must be at least 2 characters")
	}
	if req.PriceQuote < 0 {
		return newValidationError("priceQuote", "price must not be negative")
	}
	if req.DurationMinutes <= 0 {
		return newValidationError("durationMinutes", "duration must be positive")
	}
	switch req.Status {
	case "", models.JobStatusPending:
	case models.JobStatusScheduled:
		if req.ScheduledDate == nil || req.ScheduledDate.IsZero() {
			return newValidationError("scheduledDate", "a scheduled job needs a date")
		}
		if strings.TrimSpace(req.Address) == "" {
			return newValidationError("address", "a scheduled job needs an address")
		}
	default:
		return newValidationError("status", "new jobs are pending or scheduled")
	}
	return nil
}

// CreateLead turns a public booking into a pending lead priced from the organization's settings
func (s *JobService) CreateLead(ctx context.Context, orgID string, req *models.BookingRequest) (*models.Job, *models.QuoteResponse, error) {
	if req == nil {
		return nil, nil, newValidationError("request", "booking request is required")
	}
	settings, err := s.settings.GetSettings(ctx, orgID)
	if err != nil {
		return nil, nil, err
	}

	quote := ComputeQuote(&req.QuoteRequest, settings)
	size := req.LawnSize
	if size == "" {
		size = models.LawnSizeMedium
	}

	job, err := s.CreateJob(ctx, orgID, &models.CreateJobRequest{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Address:         req.Address,
		Postcode:        req.Postcode,
		LawnSize:        size,
		Frequency:       req.Frequency,
		Extras:          req.Extras,
		Notes:           req.Notes,
		PriceQuote:      quote.EstimatedPrice,
		DurationMinutes: quote.EstimatedDurationMinutes,
		LeadSource:      "booking_form",
	}, "")
	if err != nil {
		return nil, nil, err
	}
	return job, &quote, nil
}

func (s *JobService) GetJob(ctx context.Context, orgID, jobID string) (*models.Job, error) {
	var result *models.Job
	err := s.book.With(ctx, orgID, func(o *orgJobs) error {
		job := o.find(jobID)
		if job == nil {
			return ErrJobNotFound
		}
		result = job.Clone()
		return nil
	})
	return result, err
}

// ListJobs returns the organization's jobs in route order, optionally filtered
func (s *JobService) ListJobs(ctx context.Context, orgID string, filter *models.JobFilter) ([]*models.Job, error) {
	jobs, err := s.book.Jobs(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return jobs, nil
	}
	out := make([]*models.Job, 0, len(jobs))
	for _, job := range jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.Zone != "" && !strings.EqualFold(job.Zone, filter.Zone) {
			continue
		}
		if !filter.FromDate.IsZero() && (job.ScheduledDate == nil || job.ScheduledDate.Before(filter.FromDate)) {
			continue
		}
		if !filter.ToDate.IsZero() && (job.ScheduledDate == nil || job.ScheduledDate.After(filter.ToDate)) {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

// UpdateJob applies non-transition edits; these are allowed in any status
func (s *JobService) UpdateJob(ctx context.Context, orgID, jobID string, req *models.UpdateJobRequest, updatedBy string) (*models.Job, error) {
	if req == nil {
		return nil, newValidationError("request", "update request is required")
	}
	if req.PriceQuote != nil && *req.PriceQuote < 0 {
		return nil, newValidationError("priceQuote", "price must not be negative")
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return nil, newValidationError("durationMinutes", "duration must be positive")
	}

	return s.mutateJob(ctx, orgID, jobID, EventEdit, updatedBy, func(j *models.Job) error {
		if req.CustomerName != "" {
			j.CustomerName = strings.TrimSpace(req.CustomerName)
		}
		if req.CustomerEmail != "" {
			j.CustomerEmail = req.CustomerEmail
		}
		if req.CustomerPhone != "" {
			j.CustomerPhone = req.CustomerPhone
		}
		if req.Address != "" {
			j.Address = strings.TrimSpace(req.Address)
		}
		if req.Postcode != "" {
			j.Postcode = req.Postcode
		}
		if req.Zone != nil {
			j.Zone = *req.Zone
		}
		if req.Notes != nil {
			j.Notes = *req.Notes
		}
		if req.Extras != nil {
			j.Extras = append([]string(nil), req.Extras...)
		}
		if req.PriceQuote != nil {
			j.PriceQuote = round2(*req.PriceQuote)
		}
		if req.DurationMinutes != nil {
			j.DurationMinutes = *req.DurationMinutes
		}
		return nil
	}, nil)
}

func (s *JobService) DeleteJob(ctx context.Context, orgID, jobID string) error {
	return s.book.With(ctx, orgID, func(o *orgJobs) error {
		if o.find(jobID) == nil {
			return ErrJobNotFound
		}
		if err := s.jobRepo.DeleteJob(ctx, orgID, jobID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				o.remove(jobID)
				return ErrJobNotFound
			}
			return persistenceError("delete job", err)
		}
		o.remove(jobID)
		s.logger.Infof("Job %s deleted from org %s", jobID, orgID)
		return nil
	})
}

func (s *JobService) AcceptJob(ctx context.Context, orgID, jobID string, date time.Time, updatedBy string) (*models.Job, error) {
	settings, err := s.settings.GetSettings(ctx, orgID)
	if err != nil {
		return nil, err
	}
	day := OrgDate(date, orgLocation(settings))
	if date.IsZero() {
		day = time.Time{}
	}

	job, err := s.mutateJob(ctx, orgID, jobID, EventAccept, updatedBy, func(j *models.Job) error {
		return Accept(j, day, s.now().UTC())
	}, statusAudit)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyBookingConfirmed(job)
	}
	return job, nil
}

func (s *JobService) RejectJob(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	job, err := s.mutateJob(ctx, orgID, jobID, EventReject, updatedBy, func(j *models.Job) error {
		return Reject(j, s.now().UTC())
	}, statusAudit)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyLeadDeclined(job)
	}
	return job, nil
}

func (s *JobService) CancelJob(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	return s.mutateJob(ctx, orgID, jobID, EventCancel, updatedBy, func(j *models.Job) error {
		return Cancel(j, s.now().UTC())
	}, statusAudit)
}

// CompleteJob completes a scheduled job and, for recurring jobs when the organization
// allows it, creates the next visit. The second return value is that new job or nil.
func (s *JobService) CompleteJob(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, *models.Job, error) {
	settings, err := s.settings.GetSettings(ctx, orgID)
	if err != nil {
		return nil, nil, err
	}
	loc := orgLocation(settings)

	var completed, next *models.Job
	err = s.book.With(ctx, orgID, func(o *orgJobs) error {
		job := o.find(jobID)
		if job == nil {
			return ErrJobNotFound
		}
		before := job.Clone()
		now := s.now()
		var followUp *models.Job

		err := applyOptimistic(job, (*models.Job).Clone,
			func(j *models.Job) error {
				if err := Complete(j, now.UTC()); err != nil {
					return err
				}
				j.UpdatedBy = updatedBy
				if settings.AutoCreateRecurring {
					followUp = NextRecurrence(j, utils.GenerateUUID(), now.In(loc))
				}
				return nil
			},
			func(j *models.Job) error {
				if err := s.jobRepo.SaveJob(ctx, j); err != nil {
					return err
				}
				var recurrenceLog *models.SystemLog
				if followUp != nil {
					d := OrgDate(*followUp.ScheduledDate, loc)
					followUp.ScheduledDate = &d
					followUp.RouteOrder = o.nextRouteOrder()
					if _, err := s.jobRepo.CreateJob(ctx, followUp); err != nil {
						s.compensate(ctx, before)
						return fmt.Errorf("create recurrence: %w", err)
					}
					msg := fmt.Sprintf("Recurring %s visit created from job %s", followUp.Frequency, j.JobID)
					entry, err := s.audit(ctx, followUp, models.EventRecurrenceCreated, "", msg)
					if err != nil {
						s.removeRecurrence(ctx, followUp, nil)
						s.compensate(ctx, before)
						return fmt.Errorf("audit recurrence: %w", err)
					}
					recurrenceLog = entry
				}

				// completion is audited last; a failure above leaves no completion record
				ev, msg := statusAudit(before, j)
				if _, err := s.audit(ctx, j, ev, before.Status, msg); err != nil {
					if followUp != nil {
						s.removeRecurrence(ctx, followUp, recurrenceLog)
					}
					s.compensate(ctx, before)
					return fmt.Errorf("audit log: %w", err)
				}
				return nil
			},
		)
		if err != nil {
			return err
		}

		completed = job.Clone()
		if followUp != nil {
			o.jobs = append(o.jobs, followUp)
			next = followUp.Clone()
		}
		return nil
	})

	recordOutcome(EventComplete, err)
	if err != nil {
		s.logger.Warnf("Failed to complete job %s: %v", jobID, err)
		return nil, nil, err
	}
	if next != nil {
		s.logger.Infof("Job %s completed; next visit %s on %s", jobID, next.JobID, next.ScheduledDate.Format("2006-01-02"))
	}
	return completed, next, nil
}

func (s *JobService) removeRecurrence(ctx context.Context, followUp *models.Job, entry *models.SystemLog) {
	if err := s.jobRepo.DeleteJob(ctx, followUp.OrgID, followUp.JobID); err != nil {
		s.logger.Errorf("Failed to remove recurrence %s: %v", followUp.JobID, err)
	}
	if entry == nil {
		return
	}
	if err := s.logRepo.DeleteLog(ctx, entry.LogID); err != nil {
		s.logger.Errorf("Failed to withdraw log %s for recurrence %s: %v", entry.LogID, followUp.JobID, err)
	}
}

func (s *JobService) compensate(ctx context.Context, before *models.Job) {
	if err := s.jobRepo.SaveJob(ctx, before); err != nil {
		s.logger.Errorf("Failed to restore job %s: %v", before.JobID, err)
	}
}

func (s *JobService) StartTimer(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	return s.mutateJob(ctx, orgID, jobID, EventStartTimer, updatedBy, func(j *models.Job) error {
		return StartTimer(j, s.now().UTC())
	}, nil)
}

func (s *JobService) StopTimer(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	return s.mutateJob(ctx, orgID, jobID, EventStopTimer, updatedBy, func(j *models.Job) error {
		return StopTimer(j, s.now().UTC())
	}, nil)
}

// TogglePayment flips the payment status of a completed job. Becoming paid sends a review request.
func (s *JobService) TogglePayment(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	job, err := s.mutateJob(ctx, orgID, jobID, EventTogglePayment, updatedBy, func(j *models.Job) error {
		_, err := TogglePayment(j, s.now().UTC())
		return err
	}, func(before, after *models.Job) (models.SystemEvent, string) {
		return models.EventPaymentChanged, fmt.Sprintf("Payment marked %s", after.PaymentStatus)
	})
	if err != nil {
		return nil, err
	}
	if job.PaymentStatus == models.PaymentStatusPaid && s.notifier != nil {
		s.notifier.NotifyReviewRequest(job)
	}
	return job, nil
}

// batchUpdate applies mutate to each job concurrently. Each job is persisted and rolled
// back on its own; successful writes stand when others fail.
func (s *JobService) batchUpdate(
	ctx context.Context,
	jobs []*models.Job,
	event JobEvent,
	updatedBy string,
	mutate func(*models.Job) error,
	audit func(before, after *models.Job) (models.SystemEvent, string),
) ([]*models.Job, []string, error) {
	var (
		mu       sync.Mutex
		updated  []*models.Job
		failed   []string
		firstErr error
		g        errgroup.Group
	)
	g.SetLimit(batchConcurrency)

	for _, job := range jobs {
		g.Go(func() error {
			before := job.Clone()
			err := applyOptimistic(job, (*models.Job).Clone,
				func(j *models.Job) error {
					if err := mutate(j); err != nil {
						return err
					}
					j.UpdatedAt = s.now().UTC()
					j.UpdatedBy = updatedBy
					return nil
				},
				func(j *models.Job) error {
					var ev models.SystemEvent
					var msg string
					if audit != nil {
						ev, msg = audit(before, j)
					}
					return s.saveWithAudit(ctx, before, j, ev, msg)
				},
			)
			recordOutcome(event, err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, job.JobID)
				if firstErr == nil {
					firstErr = err
				}
				return err
			}
			updated = append(updated, job.Clone())
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) > 0 {
		sort.Strings(failed)
		return updated, failed, fmt.Errorf("%d of %d jobs not updated: %w", len(failed), len(jobs), firstErr)
	}
	return updated, nil, nil
}

// RainDelay moves every job scheduled for today to newDate, or to the next working day
// when newDate is nil
func (s *JobService) RainDelay(ctx context.Context, orgID string, newDate *time.Time, updatedBy string) (*models.BatchResult, error) {
	settings, err := s.settings.GetSettings(ctx, orgID)
	if err != nil {
		return nil, err
	}
	loc := orgLocation(settings)
	today := s.today(settings)

	var target time.Time
	if newDate != nil && !newDate.IsZero() {
		target = OrgDate(*newDate, loc)
	} else {
		target = NewWorkingCalendar(settings).NextWorkingDay(today)
	}
	if !target.After(DateOnly(today)) {
		return nil, newValidationError("newDate", "rain delay must move jobs to a later day")
	}

	result := &models.BatchResult{Date: target}
	var batchErr error
	err = s.book.With(ctx, orgID, func(o *orgJobs) error {
		var todays []*models.Job
		for _, job := range JobsOnDate(o.jobs, today) {
			if job.Status == models.JobStatusScheduled {
				todays = append(todays, job)
			}
		}

		updated, failed, err := s.batchUpdate(ctx, todays, EventRainDelay, updatedBy,
			func(j *models.Job) error {
				return RainDelay(j, target, s.now().UTC())
			},
			func(before, after *models.Job) (models.SystemEvent, string) {
				return models.EventRainDelayed, fmt.Sprintf("Rescheduled due to rain to %s", target.Format("2006-01-02"))
			},
		)
		result.Updated = updated
		result.FailedJobIDs = failed
		batchErr = err
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Rain delay for org %s moved %d jobs to %s (%d failed)",
		orgID, len(result.Updated), target.Format("2006-01-02"), len(result.FailedJobIDs))

	if s.notifier != nil {
		for _, job := range result.Updated {
			s.notifier.NotifyRainDelay(job)
		}
	}
	if batchErr != nil {
		return result, batchErr
	}
	return result, nil
}

// Reorder sets the route order for one day's jobs. Named jobs come first in the given
// order; the rest keep their relative order.
func (s *JobService) Reorder(ctx context.Context, orgID string, date time.Time, orderedIDs []string, updatedBy string) (*models.BatchResult, error) {
	if len(orderedIDs) == 0 {
		return nil, newValidationError("orderedIDs", "at least one job ID is required")
	}
	settings, err := s.settings.GetSettings(ctx, orgID)
	if err != nil {
		return nil, err
	}
	day := OrgDate(date, orgLocation(settings))

	result := &models.BatchResult{Date: day}
	var batchErr error
	err = s.book.With(ctx, orgID, func(o *orgJobs) error {
		ordered := ReorderJobs(JobsOnDate(o.jobs, day), orderedIDs)

		positions := make(map[string]int, len(ordered))
		var changed []*models.Job
		for i, job := range ordered {
			positions[job.JobID] = i
			if job.RouteOrder != i {
				changed = append(changed, job)
			}
		}

		updated, failed, err := s.batchUpdate(ctx, changed, EventReorder, updatedBy,
			func(j *models.Job) error {
				j.RouteOrder = positions[j.JobID]
				return nil
			}, nil)
		batchErr = err
		result.FailedJobIDs = failed

		repository.SortByRouteOrder(o.jobs)

		result.Updated = make([]*models.Job, 0, len(ordered))
		for _, job := range JobsOnDate(o.jobs, day) {
			result.Updated = append(result.Updated, job.Clone())
		}
		s.logger.Debugf("Reordered %d of %d jobs on %s", len(updated), len(ordered), day.Format("2006-01-02"))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, batchErr
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
