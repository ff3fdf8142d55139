package controller

import (
	"context"
	"greenroute-backend/models"
	"greenroute-backend/services"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) job(args mock.Arguments) (*models.Job, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobService) batch(args mock.Arguments) (*models.BatchResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatchResult), args.Error(1)
}

func (m *MockJobService) CreateJob(ctx context.Context, orgID string, req *models.CreateJobRequest, createdBy string) (*models.Job, error) {
	return m.job(m.Called(ctx, orgID, req, createdBy))
}

func (m *MockJobService) CreateLead(ctx context.Context, orgID string, req *models.BookingRequest) (*models.Job, *models.QuoteResponse, error) {
	args := m.Called(ctx, orgID, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Job), args.Get(1).(*models.QuoteResponse), args.Error(2)
}

func (m *MockJobService) GetJob(ctx context.Context, orgID, jobID string) (*models.Job, error) {
	return m.job(m.Called(ctx, orgID, jobID))
}

func (m *MockJobService) ListJobs(ctx context.Context, orgID string, filter *models.JobFilter) ([]*models.Job, error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Job), args.Error(1)
}

func (m *MockJobService) UpdateJob(ctx context.Context, orgID, jobID string, req *models.UpdateJobRequest, updatedBy string) (*models.Job, error) {
	return m.job(m.Called(ctx, orgID, jobID, req, updatedBy))
}

func (m *MockJobService) DeleteJob(ctx context.Context, orgID, jobID string) error {
	return m.Called(ctx, orgID, jobID).Error(0)
}

func (m *MockJobService) AcceptJob(ctx context.Context, orgID, jobID string, date time.Time, updatedBy string) (*models.Job, error) {
	return m.job(m.Called(ctx, orgID, jobID, date, updatedBy))
}

func (m *MockJobService) RejectJob(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	return m.job(m.Called(ctx, orgID, jobID, updatedBy))
}

func (m *MockJobService) CancelJob(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	return m.job(m.Called(ctx, orgID, jobID, updatedBy))
}

func (m *MockJobService) CompleteJob(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, *models.Job, error) {
	args := m.Called(ctx, orgID, jobID, updatedBy)
	var completed, next *models.Job
	if args.Get(0) != nil {
		completed = args.Get(0).(*models.Job)
	}
	if args.Get(1) != nil {
		next = args.Get(1).(*models.Job)
	}
	return completed, next, args.Error(2)
}

func (m *MockJobService) StartTimer(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	return m.job(m.Called(ctx, orgID, jobID, updatedBy))
}

func (m *MockJobService) StopTimer(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	return m.job(m.Called(ctx, orgID, jobID, updatedBy))
}

func (m *MockJobService) TogglePayment(ctx context.Context, orgID, jobID, updatedBy string) (*models.Job, error) {
	return m.job(m.Called(ctx, orgID, jobID, updatedBy))
}

func (m *MockJobService) RainDelay(ctx context.Context, orgID string, newDate *time.Time, updatedBy string) (*models.BatchResult, error) {
	return m.batch(m.Called(ctx, orgID, newDate, updatedBy))
}

func (m *MockJobService) Reorder(ctx context.Context, orgID string, date time.Time, orderedIDs []string, updatedBy string) (*models.BatchResult, error) {
	return m.batch(m.Called(ctx, orgID, date, orderedIDs, updatedBy))
}

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) GetSchedule(ctx context.Context, orgID string, view models.ScheduleView, date time.Time) (*models.Schedule, error) {
	args := m.Called(ctx, orgID, view, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Schedule), args.Error(1)
}

func (m *MockScheduleService) GetDayPlan(ctx context.Context, orgID string, date time.Time) (*models.DayPlan, error) {
	args := m.Called(ctx, orgID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DayPlan), args.Error(1)
}

func (m *MockScheduleService) Optimize(ctx context.Context, orgID string, date time.Time, updatedBy string) (*models.OptimizeResult, error) {
	args := m.Called(ctx, orgID, date, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OptimizeResult), args.Error(1)
}

func (m *MockScheduleService) Outlook(ctx context.Context, orgID string) (*models.Outlook, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Outlook), args.Error(1)
}

func (m *MockScheduleService) CheckMowability(ctx context.Context) (*models.WeatherCheckResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeatherCheckResult), args.Error(1)
}

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Quote(ctx context.Context, orgID string, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	args := m.Called(ctx, orgID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuoteResponse), args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSettings(ctx context.Context, orgID string) (*models.BusinessSettings, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusinessSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateSettings(ctx context.Context, orgID string, settings *models.BusinessSettings, updatedBy string) (*models.BusinessSettings, error) {
	args := m.Called(ctx, orgID, settings, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusinessSettings), args.Error(1)
}

func (m *MockSettingsService) ListSettings(ctx context.Context) ([]*models.BusinessSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BusinessSettings), args.Error(1)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) DraftETA(ctx context.Context, orgID, jobID string, minutes int, send bool) (*models.DraftMessage, error) {
	args := m.Called(ctx, orgID, jobID, minutes, send)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DraftMessage), args.Error(1)
}

type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) ListLogs(ctx context.Context, orgID, jobID string, limit int) ([]*models.SystemLog, error) {
	args := m.Called(ctx, orgID, jobID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SystemLog), args.Error(1)
}

type mockContainer struct {
	jobs     *MockJobService
	schedule *MockScheduleService
	quotes   *MockQuoteService
	settings *MockSettingsService
	messages *MockMessageService
	logs     *MockLogService
}

func newMockContainer() *mockContainer {
	return &mockContainer{
		jobs:     new(MockJobService),
		schedule: new(MockScheduleService),
		quotes:   new(MockQuoteService),
		settings: new(MockSettingsService),
		messages: new(MockMessageService),
		logs:     new(MockLogService),
	}
}

func (m *mockContainer) GetJobService() services.JobServiceInterface           { return m.jobs }
func (m *mockContainer) GetSettingsService() services.SettingsServiceInterface { return m.settings }
func (m *mockContainer) GetQuoteService() services.QuoteServiceInterface       { return m.quotes }
func (m *mockContainer) GetScheduleService() services.ScheduleServiceInterface { return m.schedule }
func (m *mockContainer) GetMessageService() services.MessageServiceInterface   { return m.messages }
func (m *mockContainer) GetLogService() services.LogServiceInterface           { return m.logs }

func (m *mockContainer) assertExpectations(t mock.TestingT) {
	m.jobs.AssertExpectations(t)
	m.schedule.AssertExpectations(t)
	m.quotes.AssertExpectations(t)
	m.settings.AssertExpectations(t)
	m.messages.AssertExpectations(t)
	m.logs.AssertExpectations(t)
}
