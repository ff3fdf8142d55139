package services

import (
	"context"
	"greenroute-backend/models"
	"greenroute-backend/repository"
	"sync"
)

// orgJobs is one organization's working set, in route order
type orgJobs struct {
	mu     sync.Mutex
	loaded bool
	jobs   []*models.Job
}

func (o *orgJobs) find(jobID string) *models.Job {
	for _, job := range o.jobs {
		if job.JobID == jobID {
			return job
		}
	}
	return nil
}

func (o *orgJobs) remove(jobID string) {
	for i, job := range o.jobs {
		if job.JobID == jobID {
			o.jobs = append(o.jobs[:i], o.jobs[i+1:]...)
			return
		}
	}
}

func (o *orgJobs) nextRouteOrder() int {
	max := -1
	for _, job := range o.jobs {
		if job.RouteOrder > max {
			max = job.RouteOrder
		}
	}
	return max + 1
}

func (o *orgJobs) snapshot() []*models.Job {
	out := make([]*models.Job, 0, len(o.jobs))
	for _, job := range o.jobs {
		out = append(out, job.Clone())
	}
	return out
}

// JobBook holds each organization's jobs in memory, loaded lazily from the repository.
// All mutations of an organization's jobs run under that organization's lock.
type JobBook struct {
	mu   sync.Mutex
	orgs map[string]*orgJobs
	repo repository.JobRepositoryInterface
}

func NewJobBook(repo repository.JobRepositoryInterface) *JobBook {
	return &JobBook{
		orgs: make(map[string]*orgJobs),
		repo: repo,
	}
}

func (b *JobBook) org(orgID string) *orgJobs {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.orgs[orgID]
	if !ok {
		o = &orgJobs{}
		b.orgs[orgID] = o
	}
	return o
}

// With runs fn while holding the organization's lock, loading its jobs first if needed
func (b *JobBook) With(ctx context.Context, orgID string, fn func(*orgJobs) error) error {
	o := b.org(orgID)
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.loaded {
		jobs, err := b.repo.ListJobs(ctx, orgID)
		if err != nil {
			return persistenceError("load jobs", err)
		}
		o.jobs = jobs
		o.loaded = true
	}
	return fn(o)
}

// Jobs returns copies of an organization's jobs in route order
func (b *JobBook) Jobs(ctx context.Context, orgID string) ([]*models.Job, error) {
	var out []*models.Job
	err := b.With(ctx, orgID, func(o *orgJobs) error {
		out = o.snapshot()
		return nil
	})
	return out, err
}
