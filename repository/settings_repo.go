package repository

import (
	"context"
	"errors"
	"fmt"
	"greenroute-backend/dal"
	"greenroute-backend/infrastructure"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
)

type SettingsRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewSettingsRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *SettingsRepository) table() string {
	return r.config.TableName(infrastructure.SettingsTable)
}

// GetSettings returns ErrNotFound when the organization has never saved settings
func (r *SettingsRepository) GetSettings(ctx context.Context, orgID string) (*models.BusinessSettings, error) {
	var settings models.BusinessSettings
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "orgID",
		KeyValue:  orgID,
		KeyType:   models.StringType,
	}, &settings)
	if err != nil {
		if errors.Is(err, dal.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings for %s: %w", orgID, err)
	}
	return &settings, nil
}

func (r *SettingsRepository) SaveSettings(ctx context.Context, settings *models.BusinessSettings) error {
	if settings.OrgID == "" {
		return errors.New("settings organization is required")
	}
	if err := r.db.PutItem(ctx, r.table(), settings); err != nil {
		r.logger.Errorf("Failed to save settings for %s: %v", settings.OrgID, err)
		return err
	}
	r.logger.Infof("Settings saved for org %s", settings.OrgID)
	return nil
}

// ListSettings scans every organization's settings; used by the worker
func (r *SettingsRepository) ListSettings(ctx context.Context) ([]*models.BusinessSettings, error) {
	var all []*models.BusinessSettings
	if err := r.db.Scan(ctx, r.table(), &all); err != nil {
		return nil, err
	}
	return all, nil
}
