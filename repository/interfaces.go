package repository

import (
	"context"
	"greenroute-backend/models"
)

// JobRepositoryInterface defines the contract for job repository operations
type JobRepositoryInterface interface {
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJob(ctx context.Context, orgID, jobID string) (*models.Job, error)
	ListJobs(ctx context.Context, orgID string) ([]*models.Job, error)
	SaveJob(ctx context.Context, job *models.Job) error
	DeleteJob(ctx context.Context, orgID, jobID string) error
}

// SettingsRepositoryInterface defines the contract for business settings storage
type SettingsRepositoryInterface interface {
	GetSettings(ctx context.Context, orgID string) (*models.BusinessSettings, error)
	SaveSettings(ctx context.Context, settings *models.BusinessSettings) error
	ListSettings(ctx context.Context) ([]*models.BusinessSettings, error)
}

// SystemLogRepositoryInterface defines the contract for the audit log
type SystemLogRepositoryInterface interface {
	AppendLog(ctx context.Context, entry *models.SystemLog) error
	ListLogs(ctx context.Context, orgID, jobID string, limit int) ([]*models.SystemLog, error)
	DeleteLog(ctx context.Context, logID string) error
}

// RepositoryContainerInterface defines the contract for the repository container
type RepositoryContainerInterface interface {
	GetJobRepository() JobRepositoryInterface
	GetSettingsRepository() SettingsRepositoryInterface
	GetSystemLogRepository() SystemLogRepositoryInterface
}
