package services

import (
	"context"
	"greenroute-backend/models"
	"time"
)

// JobServiceInterface defines the job lifecycle operations
type JobServiceInterface interface {
	CreateJob(ctx context.Context, orgID string, req *models.CreateJobRequest, createdBy string) (*models.Job, error)
	CreateLead(ctx context.Context, orgID string, req *models.BookingRequest) (*models.Job, *models.QuoteResponse, error)
	GetJob(ctx context.Context, orgID, jobID string) (*models.Job, error)
	ListJobs(ctx context.Context, orgID string, filter *models.JobFilter) ([]*models.Job, error)
	UpdateJob(ctx context.Context, orgID, jobID string, req *models.UpdateJobRequest, updatedBy string) (*models.Job, error)
	DeleteJob(ctx context.Context, orgID, jobID string) error

	AcceptJob(ctx context.Context, orgID, jobID string, date time.Time, updatedBy string) (*models.Job, error)
	RejectJob(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error)
	CancelJob(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error)
	CompleteJob(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, *models.Job, error)
	StartTimer(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error)
	StopTimer(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error)
	TogglePayment(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error)

	RainDelay(ctx context.Context, orgID string, newDate *time.Time, updatedBy string) (*models.BatchResult, error)
	Reorder(ctx context.Context, orgID string, date time.Time, orderedIDs []string, updatedBy string) (*models.BatchResult, error)
}

// QuoteServiceInterface prices quote requests against an organization's settings
type QuoteServiceInterface interface {
	Quote(ctx context.Context, orgID string, req *models.QuoteRequest) (*models.QuoteResponse, error)
}

// ScheduleServiceInterface builds calendar views and day plans
type ScheduleServiceInterface interface {
	GetSchedule(ctx context.Context, orgID string, view models.ScheduleView, date time.Time) (*models.Schedule, error)
	GetDayPlan(ctx context.Context, orgID string, date time.Time) (*models.DayPlan, error)
	Optimize(ctx context.Context, orgID string, date time.Time, updatedBy string) (*models.OptimizeResult, error)
	Outlook(ctx context.Context, orgID string) (*models.Outlook, error)
	CheckMowability(ctx context.Context) (*models.WeatherCheckResult, error)
}

// MessageServiceInterface drafts and sends customer messages for a job
type MessageServiceInterface interface {
	DraftETA(ctx context.Context, orgID, jobID string, minutes int, send bool) (*models.DraftMessage, error)
}

// LogServiceInterface reads the communications log
type LogServiceInterface interface {
	ListLogs(ctx context.Context, orgID, jobID string, limit int) ([]*models.SystemLog, error)
}

// ServiceContainerInterface defines the main service container contract
type ServiceContainerInterface interface {
	GetJobService() JobServiceInterface
	GetSettingsService() SettingsServiceInterface
	GetQuoteService() QuoteServiceInterface
	GetScheduleService() ScheduleServiceInterface
	GetMessageService() MessageServiceInterface
	GetLogService() LogServiceInterface
}
