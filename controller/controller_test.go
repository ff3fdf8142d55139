package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"greenroute-backend/middelware"
	"greenroute-backend/models"
	"greenroute-backend/services"
	"greenroute-backend/utils/logger"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ControllerTestSuite drives the registered routes with mocked services
type ControllerTestSuite struct {
	suite.Suite
	ctx        context.Context
	config     *models.Config
	logger     logger.Logger
	services   *mockContainer
	router     *gin.Engine
	jwtManager *middelware.JWTManager
	operator   string
	owner      string
}

func (suite *ControllerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctx = context.Background()
	suite.config = &models.Config{
		AppName:      "GreenRoute Test",
		AppVersion:   "test",
		JWTSecret:    "test-secret",
		JWTExpiresIn: time.Hour,
		BasePath:     "/api/v1",
	}
	suite.logger = logger.NewLoggerWithOutput("error", "text", io.Discard)
	suite.services = newMockContainer()
	suite.jwtManager = middelware.NewJWTManager(suite.config, suite.logger)

	var err error
	suite.operator, err = suite.jwtManager.GenerateToken("user-1", "op@example.com", "org-1", models.RoleOperator)
	require.NoError(suite.T(), err)
	suite.owner, err = suite.jwtManager.GenerateToken("user-2", "owner@example.com", "org-1", models.RoleOwner)
	require.NoError(suite.T(), err)

	suite.router = gin.New()
	c := NewController(suite.ctx, suite.services, suite.jwtManager, suite.logger)
	c.RegisterRoutes(suite.config, suite.router, suite.config.BasePath)
}

func (suite *ControllerTestSuite) TearDownTest() {
	suite.services.assertExpectations(suite.T())
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (suite *ControllerTestSuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, models.APIResponse) {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(suite.T(), err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var resp models.APIResponse
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func (suite *ControllerTestSuite) TestHealth() {
	w, _ := suite.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "healthy")
}

func (suite *ControllerTestSuite) TestMetricsEndpoint() {
	w, _ := suite.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *ControllerTestSuite) TestSwaggerDoc() {
	suite.config.SwaggerDocPath = filepath.Join(suite.T().TempDir(), "swagger.json")
	w, resp := suite.do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "NotFound", resp.Error.Type)

	require.NoError(suite.T(), os.WriteFile(suite.config.SwaggerDocPath, []byte(`{"swagger":"2.0"}`), 0o600))
	w, _ = suite.do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"swagger":"2.0"}`, w.Body.String())
}

func (suite *ControllerTestSuite) TestAdminRoutesRequireToken() {
	w, resp := suite.do(http.MethodGet, "/api/v1/jobs", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(suite.T(), "AuthenticationError", resp.Error.Type)
}

func (suite *ControllerTestSuite) TestCreateJob() {
	job := &models.Job{JobID: "job-1", OrgID: "org-1", CustomerName: "Ann Smith", Status: models.JobStatusPending}
	suite.services.jobs.On("CreateJob", mock.Anything, "org-1", mock.MatchedBy(func(r *models.CreateJobRequest) bool {
		return r.CustomerName == "Ann Smith" && r.LawnSize == models.LawnSizeMedium
	}), "user-1").Return(job, nil)

	w, resp := suite.do(http.MethodPost, "/api/v1/jobs", suite.operator, map[string]interface{}{
		"customerName":    "Ann Smith",
		"lawnSize":        "medium",
		"frequency":       "weekly",
		"priceQuote":      29.75,
		"durationMinutes": 45,
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Equal(suite.T(), "success", resp.Status)
}

func (suite *ControllerTestSuite) TestCreateJobValidation() {
	w, resp := suite.do(http.MethodPost, "/api/v1/jobs", suite.operator, map[string]interface{}{
		"lawnSize":        "medium",
		"frequency":       "weekly",
		"durationMinutes": 45,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	require.NotNil(suite.T(), resp.Error)
	assert.Equal(suite.T(), "ValidationError", resp.Error.Type)
	assert.Equal(suite.T(), "CustomerName", resp.Error.Field)
	suite.services.jobs.AssertNotCalled(suite.T(), "CreateJob")
}

func (suite *ControllerTestSuite) TestCreateJobInvalidJSON() {
	w, resp := suite.do(http.MethodPost, "/api/v1/jobs", suite.operator, "{not json")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "ValidationError", resp.Error.Type)
}

func (suite *ControllerTestSuite) TestGetJobNotFound() {
	suite.services.jobs.On("GetJob", mock.Anything, "org-1", "missing").
		Return(nil, fmt.Errorf("%w: missing", services.ErrJobNotFound))

	w, resp := suite.do(http.MethodGet, "/api/v1/jobs/missing", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), "NotFound", resp.Error.Type)
}

func (suite *ControllerTestSuite) TestGetJobsFilter() {
	suite.services.jobs.On("ListJobs", mock.Anything, "org-1", mock.MatchedBy(func(f *models.JobFilter) bool {
		return f.Status == models.JobStatusScheduled &&
			f.FromDate.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) &&
			f.ToDate.After(time.Date(2026, 6, 7, 23, 0, 0, 0, time.UTC))
	})).Return([]*models.Job{{JobID: "a"}, {JobID: "b"}}, nil)

	w, resp := suite.do(http.MethodGet, "/api/v1/jobs?status=scheduled&fromDate=2026-06-01&toDate=2026-06-07", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(suite.T(), 2, data["count"])
}

func (suite *ControllerTestSuite) TestGetJobsBadDate() {
	w, resp := suite.do(http.MethodGet, "/api/v1/jobs?fromDate=06/01/2026", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "fromDate", resp.Error.Field)
}

func (suite *ControllerTestSuite) TestAcceptJobInvalidTransition() {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	suite.services.jobs.On("AcceptJob", mock.Anything, "org-1", "job-1", mock.MatchedBy(date.Equal), "user-1").
		Return(nil, &services.TransitionError{JobID: "job-1", Current: models.JobStatusCompleted, Event: services.EventAccept})

	w, resp := suite.do(http.MethodPost, "/api/v1/jobs/job-1/accept", suite.operator, map[string]string{
		"scheduledDate": "2026-06-01T00:00:00Z",
	})
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "InvalidTransition", resp.Error.Type)
	assert.Contains(suite.T(), resp.Error.Details, "completed")
}

func (suite *ControllerTestSuite) TestCancelPersistenceFailure() {
	suite.services.jobs.On("CancelJob", mock.Anything, "org-1", "job-1", "user-1").
		Return(nil, fmt.Errorf("%w: save job: throttled", services.ErrPersistence))

	w, resp := suite.do(http.MethodPost, "/api/v1/jobs/job-1/cancel", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusBadGateway, w.Code)
	assert.Equal(suite.T(), "PersistenceFailure", resp.Error.Type)
}

func (suite *ControllerTestSuite) TestCompleteJobReturnsNextVisit() {
	completed := &models.Job{JobID: "job-1", Status: models.JobStatusCompleted}
	next := &models.Job{JobID: "job-2", Status: models.JobStatusScheduled, RecurringFromJobID: "job-1"}
	suite.services.jobs.On("CompleteJob", mock.Anything, "org-1", "job-1", "user-1").Return(completed, next, nil)

	w, resp := suite.do(http.MethodPost, "/api/v1/jobs/job-1/complete", suite.operator, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	nextJob := data["nextRecurrence"].(map[string]interface{})
	assert.Equal(suite.T(), "job-1", nextJob["recurringFromJobID"])
}

func (suite *ControllerTestSuite) TestTimerValidationError() {
	suite.services.jobs.On("StartTimer", mock.Anything, "org-1", "job-1", "user-1").
		Return(nil, &services.ValidationError{Field: "isTimerRunning", Message: "timer already running"})

	w, resp := suite.do(http.MethodPost, "/api/v1/jobs/job-1/timer/start", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "isTimerRunning", resp.Error.Field)
}

func (suite *ControllerTestSuite) TestDeleteRequiresOwnerOrAdmin() {
	w, resp := suite.do(http.MethodDelete, "/api/v1/jobs/job-1", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), "AuthorizationError", resp.Error.Type)

	suite.services.jobs.On("DeleteJob", mock.Anything, "org-1", "job-1").Return(nil)
	w, _ = suite.do(http.MethodDelete, "/api/v1/jobs/job-1", suite.owner, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *ControllerTestSuite) TestDraftETA() {
	suite.services.messages.On("DraftETA", mock.Anything, "org-1", "job-1", 15, false).
		Return(&models.DraftMessage{JobID: "job-1", Kind: "eta", Text: "On our way", Source: "template"}, nil)

	w, resp := suite.do(http.MethodPost, "/api/v1/jobs/job-1/messages/eta", suite.operator, map[string]interface{}{"minutes": 15})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "template", resp.Data.(map[string]interface{})["source"])
}

func (suite *ControllerTestSuite) TestDraftETARejectsZeroMinutes() {
	w, _ := suite.do(http.MethodPost, "/api/v1/jobs/job-1/messages/eta", suite.operator, map[string]interface{}{"minutes": 0})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ControllerTestSuite) TestGetScheduleInvalidView() {
	suite.services.schedule.On("GetSchedule", mock.Anything, "org-1", models.ScheduleView("year"), time.Time{}).
		Return(nil, &services.ValidationError{Field: "view", Message: "view must be one of day, week, two_week, month"})

	w, resp := suite.do(http.MethodGet, "/api/v1/schedule?view=year", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "view", resp.Error.Field)
}

func (suite *ControllerTestSuite) TestGetDayPlan() {
	date := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	suite.services.schedule.On("GetDayPlan", mock.Anything, "org-1", mock.MatchedBy(date.Equal)).
		Return(&models.DayPlan{Date: date, Slots: []models.TimeSlot{{JobID: "a", StartMinute: 480, EndMinute: 525}}}, nil)

	w, _ := suite.do(http.MethodGet, "/api/v1/schedule/day?date=2026-06-03", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *ControllerTestSuite) TestReorderPartialFailure() {
	suite.services.jobs.On("Reorder", mock.Anything, "org-1", mock.Anything, []string{"c", "a"}, "user-1").
		Return(&models.BatchResult{Updated: []*models.Job{{JobID: "c"}}, FailedJobIDs: []string{"a"}}, nil)

	w, resp := suite.do(http.MethodPost, "/api/v1/schedule/reorder", suite.operator, map[string]interface{}{
		"date":       "2026-06-03T00:00:00Z",
		"orderedIDs": []string{"c", "a"},
	})
	assert.Equal(suite.T(), http.StatusMultiStatus, w.Code)
	assert.Contains(suite.T(), resp.Message, "with failures")
}

func (suite *ControllerTestSuite) TestRainDelayWithoutBody() {
	suite.services.jobs.On("RainDelay", mock.Anything, "org-1", (*time.Time)(nil), "user-1").
		Return(&models.BatchResult{Updated: []*models.Job{{JobID: "a"}, {JobID: "b"}, {JobID: "c"}}}, nil)

	w, resp := suite.do(http.MethodPost, "/api/v1/schedule/rain-delay", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Len(suite.T(), resp.Data.(map[string]interface{})["updated"], 3)
}

func (suite *ControllerTestSuite) TestOptimizeUnavailable() {
	suite.services.schedule.On("Optimize", mock.Anything, "org-1", time.Time{}, "user-1").
		Return(&models.OptimizeResult{Applied: false, Reason: "route suggestion unavailable", Result: &models.BatchResult{}}, nil)

	w, resp := suite.do(http.MethodPost, "/api/v1/schedule/optimize", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Route unchanged: route suggestion unavailable", resp.Message)
}

func (suite *ControllerTestSuite) TestPublicQuoteUsesPathOrganization() {
	suite.services.quotes.On("Quote", mock.Anything, "org-9", mock.Anything).
		Return(&models.QuoteResponse{EstimatedPrice: 29.75, EstimatedDurationMinutes: 45}, nil)

	w, resp := suite.do(http.MethodPost, "/api/v1/public/organizations/org-9/quote", "", map[string]string{
		"lawnSize":  "medium",
		"frequency": "weekly",
	})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.EqualValues(suite.T(), 29.75, resp.Data.(map[string]interface{})["estimatedPrice"])
}

func (suite *ControllerTestSuite) TestPublicBooking() {
	suite.services.jobs.On("CreateLead", mock.Anything, "org-9", mock.MatchedBy(func(r *models.BookingRequest) bool {
		return r.CustomerEmail == "ann@example.com" && r.Frequency == models.FrequencyFortnightly
	})).Return(&models.Job{JobID: "lead-1", Status: models.JobStatusPending}, &models.QuoteResponse{EstimatedPrice: 30}, nil)

	w, resp := suite.do(http.MethodPost, "/api/v1/public/organizations/org-9/bookings", "", map[string]string{
		"customerName":  "Ann Smith",
		"customerEmail": "ann@example.com",
		"lawnSize":      "small",
		"frequency":     "fortnightly",
	})
	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Equal(suite.T(), "pending", resp.Data.(map[string]interface{})["status"])
}

func (suite *ControllerTestSuite) TestPublicBookingRequiresEmail() {
	w, resp := suite.do(http.MethodPost, "/api/v1/public/organizations/org-9/bookings", "", map[string]string{
		"customerName": "Ann Smith",
		"frequency":    "weekly",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "CustomerEmail", resp.Error.Field)
}

func (suite *ControllerTestSuite) TestUpdateSettingsRoles() {
	body := services.DefaultSettings("org-1")

	w, _ := suite.do(http.MethodPut, "/api/v1/settings", suite.operator, body)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	suite.services.settings.On("UpdateSettings", mock.Anything, "org-1", mock.Anything, "user-2").Return(body, nil)
	w, _ = suite.do(http.MethodPut, "/api/v1/settings", suite.owner, body)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *ControllerTestSuite) TestOutlookUnavailable() {
	suite.services.schedule.On("Outlook", mock.Anything, "org-1").Return(&models.Outlook{City: "Leeds", Available: false}, nil)

	w, resp := suite.do(http.MethodGet, "/api/v1/weather/outlook", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), false, resp.Data.(map[string]interface{})["available"])
}

func (suite *ControllerTestSuite) TestGetLogs() {
	suite.services.logs.On("ListLogs", mock.Anything, "org-1", "job-1", 5).
		Return([]*models.SystemLog{{LogID: "l1", Event: models.EventStatusChanged}}, nil)

	w, _ := suite.do(http.MethodGet, "/api/v1/logs?jobID=job-1&limit=5", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w, resp := suite.do(http.MethodGet, "/api/v1/logs?limit=abc", suite.operator, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "limit", resp.Error.Field)
}

func TestFormatValidationErrors(t *testing.T) {
	details, field := formatValidationErrors(fmt.Errorf("plain"))
	assert.Equal(t, "plain", details)
	assert.Empty(t, field)
}
