package services

import (
	"context"
	"errors"
	"greenroute-backend/models"
	"greenroute-backend/utils/logger"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestMessageService(t *testing.T, ai AIServiceInterface, notifier NotifierInterface) (*MessageService, *models.Job) {
	ctx := context.Background()
	log := logger.NewLoggerWithOutput("error", "text", io.Discard)
	repo := newTestRepository(t, ctx)
	jobs := NewJobService(repo.Job, repo.SystemLog, NewSettingsService(repo.Settings, log), nil, log)

	date := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	job, err := jobs.CreateJob(ctx, testOrg, &models.CreateJobRequest{
		CustomerName:    "Ada",
		CustomerPhone:   "+447700900123",
		Address:         "1 Lawn Lane",
		LawnSize:        models.LawnSizeSmall,
		Frequency:       models.FrequencyOneOff,
		DurationMinutes: 30,
		Status:          models.JobStatusScheduled,
		ScheduledDate:   &date,
	}, "user-1")
	require.NoError(t, err)

	return NewMessageService(jobs, ai, notifier, "Green Co", log), job
}

func TestDraftETAFallsBackToTemplate(t *testing.T) {
	ai := new(MockAIService)
	ai.On("DraftText", mock.Anything, MessageETA, mock.Anything).Return("", ErrExternalServiceUnavailable).Once()
	svc, job := newTestMessageService(t, ai, nil)

	msg, err := svc.DraftETA(context.Background(), testOrg, job.JobID, 20, false)
	require.NoError(t, err)
	assert.Equal(t, "template", msg.Source)
	assert.Equal(t, "Hi Ada, this is Green Co. We're on our way and should be with you in about 20 minutes.", msg.Text)
	assert.False(t, msg.Sent)
	ai.AssertExpectations(t)
}

func TestDraftETAUsesAIAndSends(t *testing.T) {
	ai := new(MockAIService)
	ai.On("DraftText", mock.Anything, MessageETA, mock.MatchedBy(func(data map[string]string) bool {
		return data["minutes"] == "10" && data["name"] == "Ada"
	})).Return("Hi Ada! We'll be there in 10.", nil).Once()
	notifier := new(MockNotifier)
	notifier.On("SendSMS", mock.Anything, "+447700900123", "Hi Ada! We'll be there in 10.").Return(nil).Once()
	svc, job := newTestMessageService(t, ai, notifier)

	msg, err := svc.DraftETA(context.Background(), testOrg, job.JobID, 10, true)
	require.NoError(t, err)
	assert.Equal(t, "ai", msg.Source)
	assert.True(t, msg.Sent)
	notifier.AssertExpectations(t)
}

func TestDraftETASendFailureKeepsDraft(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("twilio down")).Once()
	svc, job := newTestMessageService(t, nil, notifier)

	msg, err := svc.DraftETA(context.Background(), testOrg, job.JobID, 10, true)
	require.NoError(t, err)
	assert.False(t, msg.Sent)
	assert.NotEmpty(t, msg.Text)
}

func TestDraftETAValidation(t *testing.T) {
	svc, job := newTestMessageService(t, nil, nil)
	ctx := context.Background()

	_, err := svc.DraftETA(ctx, testOrg, job.JobID, 0, false)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.DraftETA(ctx, testOrg, "missing", 10, false)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestLogServiceNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)
	base := time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC)
	for i, ev := range []models.SystemEvent{models.EventLeadCreated, models.EventStatusChanged, models.EventPaymentChanged} {
		require.NoError(t, repo.SystemLog.AppendLog(ctx, &models.SystemLog{
			OrgID:     testOrg,
			JobID:     "job-1",
			Event:     ev,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	logs, err := NewLogService(repo.SystemLog).ListLogs(ctx, testOrg, "job-1", 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.EventPaymentChanged, logs[0].Event)
	assert.Equal(t, models.EventStatusChanged, logs[1].Event)
}
