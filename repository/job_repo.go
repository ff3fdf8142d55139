package repository

import (
	"context"
	"errors"
	"fmt"
	"greenroute-backend/dal"
	"greenroute-backend/infrastructure"
	"greenroute-backend/models"
	"greenroute-backend/utils"
	"greenroute-backend/utils/logger"
	"sort"
	"time"
)

type JobRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewJobRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *JobRepository {
	return &JobRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *JobRepository) table() string {
	return r.config.TableName(infrastructure.JobsTable)
}

// CreateJob stores a new job, assigning an ID and timestamps when missing
func (r *JobRepository) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.OrgID == "" {
		return nil, errors.New("job organization is required")
	}
	if job.JobID == "" {
		job.JobID = utils.GenerateUUID()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	job.UpdatedAt = job.CreatedAt

	r.logger.Debugf("Creating job %s for org %s", job.JobID, job.OrgID)

	if err := r.db.PutItem(ctx, r.table(), job); err != nil {
		r.logger.Errorf("Failed to create job: %v", err)
		return nil, err
	}

	r.logger.Infof("Job created successfully: %s", job.JobID)
	return job, nil
}

// GetJob fetches a job by ID. Jobs from another organization are reported as not found.
func (r *JobRepository) GetJob(ctx context.Context, orgID, jobID string) (*models.Job, error) {
	if jobID == "" {
		return nil, errors.New("job ID is required")
	}

	var job models.Job
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "jobID",
		KeyValue:  jobID,
		KeyType:   models.StringType,
	}, &job)
	if err != nil {
		if errors.Is(err, dal.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		r.logger.Errorf("Failed to get job %s: %v", jobID, err)
		return nil, fmt.Errorf("failed to get job %s: %w", jobID, err)
	}

	if orgID != "" && job.OrgID != orgID {
		return nil, ErrNotFound
	}
	return &job, nil
}

// ListJobs returns an organization's jobs in route order
func (r *JobRepository) ListJobs(ctx context.Context, orgID string) ([]*models.Job, error) {
	var jobs []*models.Job
	err := r.db.QueryByIndex(ctx, models.QueryConfig{
		TableName: r.table(),
		IndexName: infrastructure.OrgIndex,
		KeyName:   "orgID",
		KeyValue:  orgID,
		KeyType:   models.StringType,
	}, &jobs)
	if err != nil {
		r.logger.Errorf("Failed to list jobs for org %s: %v", orgID, err)
		return nil, err
	}

	SortByRouteOrder(jobs)

	r.logger.Debugf("Found %d jobs for org %s", len(jobs), orgID)
	return jobs, nil
}

// SaveJob writes the full job, replacing the stored copy
func (r *JobRepository) SaveJob(ctx context.Context, job *models.Job) error {
	if job.JobID == "" {
		return errors.New("job ID is required")
	}
	if err := r.db.PutItem(ctx, r.table(), job); err != nil {
		r.logger.Errorf("Failed to save job %s: %v", job.JobID, err)
		return err
	}
	return nil
}

func (r *JobRepository) DeleteJob(ctx context.Context, orgID, jobID string) error {
	if _, err := r.GetJob(ctx, orgID, jobID); err != nil {
		return err
	}
	if err := r.db.DeleteItem(ctx, r.table(), "jobID", jobID); err != nil {
		r.logger.Errorf("Failed to delete job: %v", err)
		return err
	}

	r.logger.Infof("Job deleted successfully: %s", jobID)
	return nil
}

// SortByRouteOrder orders jobs by persisted route position, then creation time
func SortByRouteOrder(jobs []*models.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].RouteOrder != jobs[j].RouteOrder {
			return jobs[i].RouteOrder < jobs[j].RouteOrder
		}
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})
}
