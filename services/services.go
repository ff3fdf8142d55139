package services

import (
	"greenroute-backend/models"
	"greenroute-backend/repository"
	"greenroute-backend/utils/logger"
)

// Service implements ServiceContainerInterface
type Service struct {
	jobService      *JobService
	settingsService *SettingsService
	quoteService    *QuoteService
	scheduleService *ScheduleService
	messageService  *MessageService
	logService      *LogService
}

// NewService creates a new service container with all dependencies injected. The job
// service is created once here and shared by every consumer.
func NewService(
	repoContainer repository.RepositoryContainerInterface,
	logger logger.Logger,
	config *models.Config,
) *Service {
	ai := NewOpenAIService(config.OpenAIAPIKey, config.OpenAIModel, logger)
	notifier := NewNotificationService(config, ai, logger)

	var cache ForecastCache
	if config.RedisAddr != "" {
		cache = NewRedisForecastCache(config)
	}
	forecast := NewForecastService(config, cache, logger)

	settings := NewSettingsService(repoContainer.GetSettingsRepository(), logger)
	jobs := NewJobService(
		repoContainer.GetJobRepository(),
		repoContainer.GetSystemLogRepository(),
		settings,
		notifier,
		logger,
	)

	return &Service{
		jobService:      jobs,
		settingsService: settings,
		quoteService:    NewQuoteService(settings, logger),
		scheduleService: NewScheduleService(jobs, settings, forecast, ai, repoContainer.GetSystemLogRepository(), logger),
		messageService:  NewMessageService(jobs, ai, notifier, config.BusinessName, logger),
		logService:      NewLogService(repoContainer.GetSystemLogRepository()),
	}
}

// GetJobService returns the job service interface
func (s *Service) GetJobService() JobServiceInterface {
	return s.jobService
}

// GetSettingsService returns the settings service interface
func (s *Service) GetSettingsService() SettingsServiceInterface {
	return s.settingsService
}

// GetQuoteService returns the quote service interface
func (s *Service) GetQuoteService() QuoteServiceInterface {
	return s.quoteService
}

// GetScheduleService returns the schedule service interface
func (s *Service) GetScheduleService() ScheduleServiceInterface {
	return s.scheduleService
}

// GetMessageService returns the message service interface
func (s *Service) GetMessageService() MessageServiceInterface {
	return s.messageService
}

// GetLogService returns the log service interface
func (s *Service) GetLogService() LogServiceInterface {
	return s.logService
}
