package controller

import (
	"context"
	"greenroute-backend/models"
	"greenroute-backend/services"
	"greenroute-backend/utils/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ScheduleController struct {
	ctx             context.Context
	scheduleService services.ScheduleServiceInterface
	jobService      services.JobServiceInterface
	logger          logger.Logger
	validator       *validator.Validate
}

func NewScheduleController(ctx context.Context, scheduleService services.ScheduleServiceInterface, jobService services.JobServiceInterface, logger logger.Logger) *ScheduleController {
	return &ScheduleController{
		ctx:             ctx,
		scheduleService: scheduleService,
		jobService:      jobService,
		logger:          logger,
		validator:       validator.New(),
	}
}

// GetSchedule handles GET /api/v1/schedule
// @Summary Calendar view of scheduled jobs
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param view query string false "day, week, two_week or month" default(week)
// @Param date query string false "Anchor date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /schedule [get]
func (h *ScheduleController) GetSchedule(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	schedule, err := h.scheduleService.GetSchedule(c.Request.Context(), claims.OrganizationID, models.ScheduleView(c.Query("view")), date)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to build schedule", err)
		return
	}
	respond(c, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// GetDayPlan handles GET /api/v1/schedule/day
// @Summary One day's jobs in route order with time slots
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} models.APIResponse
// @Router /schedule/day [get]
func (h *ScheduleController) GetDayPlan(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	plan, err := h.scheduleService.GetDayPlan(c.Request.Context(), claims.OrganizationID, date)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to build day plan", err)
		return
	}
	respond(c, http.StatusOK, "Day plan retrieved successfully", plan)
}

// Reorder handles POST /api/v1/schedule/reorder
// @Summary Apply a new visiting order to a day
// @Description Listed jobs take the first positions in the given order; the rest keep their relative order after them
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ReorderRequest true "Date and ordered job IDs"
// @Success 200 {object} models.APIResponse
// @Failure 502 {object} models.APIResponse
// @Router /schedule/reorder [post]
func (h *ScheduleController) Reorder(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	var req models.ReorderRequest
	if !bind(c, h.validator, h.logger, &req) {
		return
	}

	result, err := h.jobService.Reorder(c.Request.Context(), claims.OrganizationID, req.Date, req.OrderedIDs, claims.UserID)
	if err != nil && result == nil {
		respondServiceError(c, h.logger, "Failed to reorder route", err)
		return
	}
	respondBatch(c, "Route reordered", result)
}

// Optimize handles POST /api/v1/schedule/optimize
// @Summary Ask the route assistant for a visiting order
// @Description Keeps the current order when the assistant is not configured or does not answer
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} models.APIResponse
// @Router /schedule/optimize [post]
func (h *ScheduleController) Optimize(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	result, err := h.scheduleService.Optimize(c.Request.Context(), claims.OrganizationID, date, claims.UserID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to optimize route", err)
		return
	}
	message := "Route optimized"
	if !result.Applied {
		message = "Route unchanged: " + result.Reason
	}
	respond(c, http.StatusOK, message, result)
}

// RainDelay handles POST /api/v1/schedule/rain-delay
// @Summary Move today's scheduled jobs to another day
// @Tags Schedule
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.RainDelayRequest false "Target date, defaults to the next working day"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /schedule/rain-delay [post]
func (h *ScheduleController) RainDelay(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	var req models.RainDelayRequest
	if c.Request.ContentLength > 0 {
		if !bind(c, h.validator, h.logger, &req) {
			return
		}
	}

	result, err := h.jobService.RainDelay(c.Request.Context(), claims.OrganizationID, req.NewDate, claims.UserID)
	if err != nil && result == nil {
		respondServiceError(c, h.logger, "Failed to apply rain delay", err)
		return
	}
	respondBatch(c, "Rain delay applied", result)
}

// respondBatch answers 207 when some jobs in the batch were not updated
func respondBatch(c *gin.Context, message string, result *models.BatchResult) {
	if len(result.FailedJobIDs) > 0 {
		respond(c, http.StatusMultiStatus, message+" with failures", result)
		return
	}
	respond(c, http.StatusOK, message, result)
}
