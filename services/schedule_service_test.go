package services

import (
	"context"
	"errors"
	"greenroute-backend/models"
	"greenroute-backend/repository"
	"greenroute-backend/utils/logger"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ScheduleServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	repo     *repository.Repository
	settings *SettingsService
	jobs     *JobService
	ai       *MockAIService
	forecast *MockForecastService
	service  *ScheduleService
}

func (suite *ScheduleServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 6, 3, 7, 0, 0, 0, time.UTC)
	log := logger.NewLoggerWithOutput("error", "text", io.Discard)

	suite.repo = newTestRepository(suite.T(), suite.ctx)
	suite.settings = NewSettingsService(suite.repo.Settings, log)
	suite.saveSettings(testOrg, "Bristol")

	suite.jobs = NewJobService(suite.repo.Job, suite.repo.SystemLog, suite.settings, nil, log)
	suite.jobs.SetClock(func() time.Time { return suite.now })

	suite.ai = new(MockAIService)
	suite.forecast = new(MockForecastService)
	suite.service = NewScheduleService(suite.jobs, suite.settings, suite.forecast, suite.ai, suite.repo.SystemLog, log)
	suite.service.SetClock(func() time.Time { return suite.now })
}

func TestScheduleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}

func (suite *ScheduleServiceTestSuite) saveSettings(orgID, city string) {
	s := DefaultSettings(orgID)
	s.TimeZone = "UTC"
	s.WeatherCity = city
	_, err := suite.settings.UpdateSettings(suite.ctx, orgID, s, "owner")
	require.NoError(suite.T(), err)
}

func (suite *ScheduleServiceTestSuite) schedule(name string, date time.Time, minutes int) *models.Job {
	job, err := suite.jobs.CreateJob(suite.ctx, testOrg, &models.CreateJobRequest{
		CustomerName:    name,
		Address:         name + " Road",
		LawnSize:        models.LawnSizeLarge,
		Frequency:       models.FrequencyOneOff,
		DurationMinutes: minutes,
		Status:          models.JobStatusScheduled,
		ScheduledDate:   &date,
	}, "user-1")
	require.NoError(suite.T(), err)
	return job
}

func (suite *ScheduleServiceTestSuite) TestGetSchedule() {
	suite.schedule("Ada", day(2026, 6, 3), 60)
	suite.schedule("Grace", day(2026, 6, 9), 60)

	week, err := suite.service.GetSchedule(suite.ctx, testOrg, models.ScheduleViewWeek, time.Time{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), week.Cells, 7)
	assert.Equal(suite.T(), day(2026, 6, 1), week.Start)
	assert.True(suite.T(), week.Cells[2].IsToday)
	assert.Len(suite.T(), week.Cells[2].Jobs, 1)

	twoWeek, err := suite.service.GetSchedule(suite.ctx, testOrg, models.ScheduleViewTwoWeek, day(2026, 6, 3))
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), twoWeek.Cells, 14)
	assert.Len(suite.T(), twoWeek.Cells[8].Jobs, 1)

	_, err = suite.service.GetSchedule(suite.ctx, testOrg, "year", day(2026, 6, 3))
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func (suite *ScheduleServiceTestSuite) TestGetDayPlan() {
	suite.schedule("Ada", day(2026, 6, 3), 300)
	suite.schedule("Grace", day(2026, 6, 3), 300)

	plan, err := suite.service.GetDayPlan(suite.ctx, testOrg, time.Time{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), plan.Slots, 2)
	assert.Equal(suite.T(), 8*60, plan.Slots[0].StartMinute)
	assert.Equal(suite.T(), 8*60+300+TravelBufferMinutes, plan.Slots[1].StartMinute)
	assert.True(suite.T(), plan.Overrun)
}

func (suite *ScheduleServiceTestSuite) TestOptimizeAppliesSuggestion() {
	a := suite.schedule("Ada", day(2026, 6, 3), 60)
	b := suite.schedule("Grace", day(2026, 6, 3), 60)
	suite.ai.On("SuggestRouteOrder", mock.Anything, mock.Anything).Return([]string{b.JobID, a.JobID}, nil).Once()

	result, err := suite.service.Optimize(suite.ctx, testOrg, day(2026, 6, 3), "user-1")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.Applied)
	assert.Equal(suite.T(), []string{b.JobID, a.JobID}, jobIDs(result.Result.Updated))
	suite.ai.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestOptimizeKeepsOrderWhenUnavailable() {
	a := suite.schedule("Ada", day(2026, 6, 3), 60)
	b := suite.schedule("Grace", day(2026, 6, 3), 60)
	suite.ai.On("SuggestRouteOrder", mock.Anything, mock.Anything).Return(nil, ErrExternalServiceUnavailable).Once()

	result, err := suite.service.Optimize(suite.ctx, testOrg, day(2026, 6, 3), "user-1")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), result.Applied)
	assert.Equal(suite.T(), "route suggestion unavailable", result.Reason)
	assert.Equal(suite.T(), []string{a.JobID, b.JobID}, jobIDs(result.Result.Updated))

	single, err := suite.service.Optimize(suite.ctx, testOrg, day(2026, 6, 4), "user-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "nothing to reorder", single.Reason)
}

func (suite *ScheduleServiceTestSuite) TestOutlook() {
	expected := &models.Outlook{City: "Bristol", Available: true}
	suite.forecast.On("Outlook", mock.Anything, "Bristol", mock.Anything).Return(expected).Once()

	outlook, err := suite.service.Outlook(suite.ctx, testOrg)
	require.NoError(suite.T(), err)
	assert.Same(suite.T(), expected, outlook)

	suite.saveSettings("org-2", "")
	outlook, err = suite.service.Outlook(suite.ctx, "org-2")
	require.NoError(suite.T(), err)
	assert.False(suite.T(), outlook.Available)
}

func (suite *ScheduleServiceTestSuite) TestCheckMowabilitySuggestsRainDelay() {
	suite.saveSettings("org-2", "Leeds")
	suite.saveSettings("org-3", "")
	suite.saveSettings("org-4", "Atlantis")

	suite.forecast.On("Forecast", mock.Anything, "Bristol").
		Return([]models.DailyForecast{{TempC: 14, RainChancePct: 90, WindKmh: 20, HumidityPct: 92}}, nil)
	suite.forecast.On("Forecast", mock.Anything, "Leeds").
		Return([]models.DailyForecast{{TempC: 18, RainChancePct: 5, WindKmh: 10, HumidityPct: 60}}, nil)
	suite.forecast.On("Forecast", mock.Anything, "Atlantis").
		Return(nil, errors.New("no results"))

	result, err := suite.service.CheckMowability(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, result.Organizations)
	assert.Equal(suite.T(), 1, result.Suggestions)
	assert.Equal(suite.T(), 2, result.Skipped)
	assert.Len(suite.T(), result.Errors, 1)

	logs, err := suite.repo.SystemLog.ListLogs(suite.ctx, testOrg, "", 0)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), logs, 1)
	assert.Equal(suite.T(), models.EventRainDelaySuggested, logs[0].Event)
	assert.Contains(suite.T(), logs[0].Message, "Bristol")

	// nothing was moved
	jobs, err := suite.jobs.ListJobs(suite.ctx, testOrg, &models.JobFilter{Status: models.JobStatusScheduled})
	require.NoError(suite.T(), err)
	for _, j := range jobs {
		assert.False(suite.T(), j.IsRainDelayed)
	}
}
