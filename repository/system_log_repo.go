package repository

import (
	"context"
	"errors"
	"greenroute-backend/dal"
	"greenroute-backend/infrastructure"
	"greenroute-backend/models"
	"greenroute-backend/utils"
	"greenroute-backend/utils/logger"
	"sort"
	"time"
)

type SystemLogRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewSystemLogRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *SystemLogRepository {
	return &SystemLogRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *SystemLogRepository) table() string {
	return r.config.TableName(infrastructure.SystemLogsTable)
}

func (r *SystemLogRepository) AppendLog(ctx context.Context, entry *models.SystemLog) error {
	if entry.OrgID == "" {
		return errors.New("log organization is required")
	}
	if entry.LogID == "" {
		entry.LogID = utils.GenerateUUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := r.db.PutItem(ctx, r.table(), entry); err != nil {
		r.logger.Errorf("Failed to append %s log for job %s: %v", entry.Event, entry.JobID, err)
		return err
	}
	return nil
}

// DeleteLog removes one entry. Only used to withdraw a record whose write was rolled back.
func (r *SystemLogRepository) DeleteLog(ctx context.Context, logID string) error {
	if err := r.db.DeleteItem(ctx, r.table(), "logID", logID); err != nil {
		r.logger.Errorf("Failed to delete log %s: %v", logID, err)
		return err
	}
	return nil
}

// ListLogs returns newest first, optionally narrowed to one job; limit <= 0 means no limit
func (r *SystemLogRepository) ListLogs(ctx context.Context, orgID, jobID string, limit int) ([]*models.SystemLog, error) {
	var logs []*models.SystemLog
	err := r.db.QueryByIndex(ctx, models.QueryConfig{
		TableName: r.table(),
		IndexName: infrastructure.OrgIndex,
		KeyName:   "orgID",
		KeyValue:  orgID,
		KeyType:   models.StringType,
	}, &logs)
	if err != nil {
		return nil, err
	}

	if jobID != "" {
		filtered := logs[:0]
		for _, l := range logs {
			if l.JobID == jobID {
				filtered = append(filtered, l)
			}
		}
		logs = filtered
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})

	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}
