package services

import (
	"context"
	"errors"
	"greenroute-backend/models"
	"greenroute-backend/repository"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingConfirmed(job *models.Job) { m.Called(job) }
func (m *MockNotifier) NotifyLeadDeclined(job *models.Job)     { m.Called(job) }
func (m *MockNotifier) NotifyReviewRequest(job *models.Job)    { m.Called(job) }
func (m *MockNotifier) NotifyRainDelay(job *models.Job)        { m.Called(job) }

func (m *MockNotifier) SendSMS(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

func (m *MockNotifier) SendEmail(ctx context.Context, toName, toAddr, subject, body string) error {
	args := m.Called(ctx, toName, toAddr, subject, body)
	return args.Error(0)
}

type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) DraftText(ctx context.Context, kind MessageKind, data map[string]string) (string, error) {
	args := m.Called(ctx, kind, data)
	return args.String(0), args.Error(1)
}

func (m *MockAIService) SuggestRouteOrder(ctx context.Context, jobs []*models.Job) ([]string, error) {
	args := m.Called(ctx, jobs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockForecastService struct {
	mock.Mock
}

func (m *MockForecastService) Forecast(ctx context.Context, city string) ([]models.DailyForecast, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyForecast), args.Error(1)
}

func (m *MockForecastService) Outlook(ctx context.Context, city string, thresholds models.MowabilityThreshold) *models.Outlook {
	args := m.Called(ctx, city, thresholds)
	return args.Get(0).(*models.Outlook)
}

var errWriteRejected = errors.New("conditional check failed")

// failingJobRepo rejects writes for selected jobs
type failingJobRepo struct {
	repository.JobRepositoryInterface

	mu         sync.Mutex
	failSave   map[string]bool
	failCreate bool
}

func (r *failingJobRepo) failSaves(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		r.failSave[id] = true
	}
}

func (r *failingJobRepo) SaveJob(ctx context.Context, job *models.Job) error {
	r.mu.Lock()
	fail := r.failSave[job.JobID]
	r.mu.Unlock()
	if fail {
		return errWriteRejected
	}
	return r.JobRepositoryInterface.SaveJob(ctx, job)
}

func (r *failingJobRepo) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	r.mu.Lock()
	fail := r.failCreate
	r.mu.Unlock()
	if fail {
		return nil, errWriteRejected
	}
	return r.JobRepositoryInterface.CreateJob(ctx, job)
}

// failingLogRepo rejects every append while failAppend is set, or only appends of failEvent
type failingLogRepo struct {
	repository.SystemLogRepositoryInterface

	mu         sync.Mutex
	failAppend bool
	failEvent  models.SystemEvent
}

func (r *failingLogRepo) failOn(event models.SystemEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failEvent = event
}

func (r *failingLogRepo) setFail(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failAppend = fail
}

func (r *failingLogRepo) AppendLog(ctx context.Context, entry *models.SystemLog) error {
	r.mu.Lock()
	fail := r.failAppend || (r.failEvent != "" && r.failEvent == entry.Event)
	r.mu.Unlock()
	if fail {
		return errWriteRejected
	}
	return r.SystemLogRepositoryInterface.AppendLog(ctx, entry)
}
