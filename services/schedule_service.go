package services

import (
	"context"
	"errors"
	"fmt"
	"greenroute-backend/models"
	"greenroute-backend/repository"
	"greenroute-backend/utils/logger"
	"time"
)

type ScheduleService struct {
	jobs     JobServiceInterface
	settings SettingsServiceInterface
	forecast ForecastServiceInterface
	ai       AIServiceInterface
	logRepo  repository.SystemLogRepositoryInterface
	logger   logger.Logger
	now      func() time.Time
}

func NewScheduleService(
	jobs JobServiceInterface,
	settings SettingsServiceInterface,
	forecast ForecastServiceInterface,
	ai AIServiceInterface,
	logRepo repository.SystemLogRepositoryInterface,
	log logger.Logger,
) *ScheduleService {
	return &ScheduleService{
		jobs:     jobs,
		settings: settings,
		forecast: forecast,
		ai:       ai,
		logRepo:  logRepo,
		logger:   log,
		now:      time.Now,
	}
}

func (s *ScheduleService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ScheduleService) GetSchedule(ctx context.Context, orgID string, view models.ScheduleView, date time.Time) (*models.Schedule, error) {
	switch view {
	case "", models.ScheduleViewDay, models.ScheduleViewWeek, models.ScheduleViewTwoWeek, models.ScheduleViewMonth:
	default:
		return nil, newValidationError("view", "view must be one of day, week, two_week, month")
	}

	settings, err := s.settings.GetSettings(ctx, orgID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListJobs(ctx, orgID, nil)
	if err != nil {
		return nil, err
	}

	loc := orgLocation(settings)
	today := s.now().In(loc)
	if date.IsZero() {
		date = today
	}
	return BuildSchedule(jobs, view, OrgDate(date, loc), today, NewWorkingCalendar(settings)), nil
}

func (s *ScheduleService) GetDayPlan(ctx context.Context, orgID string, date time.Time) (*models.DayPlan, error) {
	settings, err := s.settings.GetSettings(ctx, orgID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListJobs(ctx, orgID, nil)
	if err != nil {
		return nil, err
	}

	loc := orgLocation(settings)
	if date.IsZero() {
		date = s.now().In(loc)
	}
	return PlanDay(jobs, OrgDate(date, loc), settings.ScheduleStartHour, settings.ScheduleEndHour), nil
}

// Optimize asks the AI service for a visiting order and applies it. Without the AI
// service the current order is kept and Applied is false.
func (s *ScheduleService) Optimize(ctx context.Context, orgID string, date time.Time, updatedBy string) (*models.OptimizeResult, error) {
	plan, err := s.GetDayPlan(ctx, orgID, date)
	if err != nil {
		return nil, err
	}
	current := &models.BatchResult{Date: plan.Date, Updated: plan.Jobs}

	if len(plan.Jobs) < 2 {
		return &models.OptimizeResult{Applied: false, Reason: "nothing to reorder", Result: current}, nil
	}

	var ids []string
	if s.ai != nil {
		ids, err = s.ai.SuggestRouteOrder(ctx, plan.Jobs)
	} else {
		err = ErrExternalServiceUnavailable
	}
	if err != nil {
		if !errors.Is(err, ErrExternalServiceUnavailable) {
			return nil, err
		}
		s.logger.Infof("Route suggestion unavailable for org %s, keeping current order: %v", orgID, err)
		return &models.OptimizeResult{Applied: false, Reason: "route suggestion unavailable", Result: current}, nil
	}

	result, err := s.jobs.Reorder(ctx, orgID, plan.Date, ids, updatedBy)
	if err != nil {
		return nil, err
	}
	return &models.OptimizeResult{Applied: true, Result: result}, nil
}

// Outlook returns the scored forecast for the organization's weather city
func (s *ScheduleService) Outlook(ctx context.Context, orgID string) (*models.Outlook, error) {
	settings, err := s.settings.GetSettings(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if s.forecast == nil || settings.WeatherCity == "" {
		return &models.Outlook{City: settings.WeatherCity, Available: false}, nil
	}
	return s.forecast.Outlook(ctx, settings.WeatherCity, settings.Mowability), nil
}

// CheckMowability scores today for every organization with a weather city and records a
// rain delay suggestion where the score is under the organization's threshold. Jobs are
// never moved here.
func (s *ScheduleService) CheckMowability(ctx context.Context) (*models.WeatherCheckResult, error) {
	result := &models.WeatherCheckResult{StartTime: s.now()}
	defer func() { result.Duration = time.Since(result.StartTime) }()

	all, err := s.settings.ListSettings(ctx)
	if err != nil {
		return result, err
	}

	for _, settings := range all {
		if settings.WeatherCity == "" || s.forecast == nil {
			result.Skipped++
			continue
		}
		result.Organizations++

		days, err := s.forecast.Forecast(ctx, settings.WeatherCity)
		if err != nil || len(days) == 0 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: forecast unavailable", settings.OrgID))
			continue
		}

		score := MowabilityScore(days[0], settings.Mowability)
		if score >= settings.RainDelayScoreThreshold {
			continue
		}

		entry := &models.SystemLog{
			OrgID:   settings.OrgID,
			Event:   models.EventRainDelaySuggested,
			Message: fmt.Sprintf("Mowability score %d for %s is below %d; consider a rain delay", score, settings.WeatherCity, settings.RainDelayScoreThreshold),
		}
		if err := s.logRepo.AppendLog(ctx, entry); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", settings.OrgID, err))
			continue
		}
		result.Suggestions++
		s.logger.Warnf("Org %s: mowability %d in %s, rain delay suggested", settings.OrgID, score, settings.WeatherCity)
	}
	return result, nil
}
