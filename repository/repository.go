package repository

import (
	"greenroute-backend/dal"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
)

// ErrNotFound is returned when a keyed lookup has no match
var ErrNotFound = dal.ErrItemNotFound

type Repository struct {
	Job       *JobRepository
	Settings  *SettingsRepository
	SystemLog *SystemLogRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Job:       NewJobRepository(db, cfg, log),
		Settings:  NewSettingsRepository(db, cfg, log),
		SystemLog: NewSystemLogRepository(db, cfg, log),
	}
}

func (r *Repository) GetJobRepository() JobRepositoryInterface {
	return r.Job
}

func (r *Repository) GetSettingsRepository() SettingsRepositoryInterface {
	return r.Settings
}

func (r *Repository) GetSystemLogRepository() SystemLogRepositoryInterface {
	return r.SystemLog
}
