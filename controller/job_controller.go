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

type JobController struct {
	ctx            context.Context
	jobService     services.JobServiceInterface
	messageService services.MessageServiceInterface
	logger         logger.Logger
	validator      *validator.Validate
}

func NewJobController(ctx context.Context, jobService services.JobServiceInterface, messageService services.MessageServiceInterface, logger logger.Logger) *JobController {
	return &JobController{
		ctx:            ctx,
		jobService:     jobService,
		messageService: messageService,
		logger:         logger,
		validator:      validator.New(),
	}
}

// CreateJob handles POST /api/v1/jobs
// @Summary Create a lead or scheduled job
// @Tags Jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateJobRequest true "Create job request"
// @Success 201 {object} models.APIResponse "Job created successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid job data"
// @Failure 502 {object} models.APIResponse "Persistence failure"
// @Router /jobs [post]
func (h *JobController) CreateJob(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	var req models.CreateJobRequest
	if !bind(c, h.validator, h.logger, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), claims.OrganizationID, &req, claims.UserID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to create job", err)
		return
	}
	respond(c, http.StatusCreated, "Job created successfully", job)
}

// GetJobs handles GET /api/v1/jobs
// @Summary List jobs in route order
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Param zone query string false "Filter by zone"
// @Param fromDate query string false "Scheduled on or after (YYYY-MM-DD)"
// @Param toDate query string false "Scheduled on or before (YYYY-MM-DD)"
// @Success 200 {object} models.APIResponse "Jobs retrieved successfully"
// @Router /jobs [get]
func (h *JobController) GetJobs(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}

	filter := &models.JobFilter{
		Status: models.JobStatus(c.Query("status")),
		Zone:   c.Query("zone"),
	}
	if filter.FromDate, ok = queryDate(c, "fromDate"); !ok {
		return
	}
	if filter.ToDate, ok = queryDate(c, "toDate"); !ok {
		return
	}
	if !filter.ToDate.IsZero() {
		filter.ToDate = filter.ToDate.AddDate(0, 0, 1).Add(-1)
	}

	jobs, err := h.jobService.ListJobs(c.Request.Context(), claims.OrganizationID, filter)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to retrieve jobs", err)
		return
	}
	respond(c, http.StatusOK, "Jobs retrieved successfully", models.ListResponse{Items: jobs, Count: len(jobs)})
}

// GetJob handles GET /api/v1/jobs/:id
// @Summary Get a job
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /jobs/{id} [get]
func (h *JobController) GetJob(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	job, err := h.jobService.GetJob(c.Request.Context(), claims.OrganizationID, c.Param("id"))
	if err != nil {
		respondServiceError(c, h.logger, "Failed to retrieve job", err)
		return
	}
	respond(c, http.StatusOK, "Job retrieved successfully", job)
}

// UpdateJob handles PATCH /api/v1/jobs/:id
// @Summary Edit notes, zone, contact or pricing fields
// @Tags Jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body models.UpdateJobRequest true "Fields to change"
// @Success 200 {object} models.APIResponse
// @Router /jobs/{id} [patch]
func (h *JobController) UpdateJob(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	var req models.UpdateJobRequest
	if !bind(c, h.validator, h.logger, &req) {
		return
	}
	job, err := h.jobService.UpdateJob(c.Request.Context(), claims.OrganizationID, c.Param("id"), &req, claims.UserID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to update job", err)
		return
	}
	respond(c, http.StatusOK, "Job updated successfully", job)
}

// DeleteJob handles DELETE /api/v1/jobs/:id
// @Summary Delete a job
// @Tags Jobs
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse
// @Router /jobs/{id} [delete]
func (h *JobController) DeleteJob(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	if err := h.jobService.DeleteJob(c.Request.Context(), claims.OrganizationID, c.Param("id")); err != nil {
		respondServiceError(c, h.logger, "Failed to delete job", err)
		return
	}
	respond(c, http.StatusOK, "Job deleted successfully", nil)
}

// AcceptJob handles POST /api/v1/jobs/:id/accept
// @Summary Schedule a pending lead
// @Tags Job Lifecycle
// @Security BearerAuth
// @Accept json
// @Param id path string true "Job ID"
// @Param request body models.AcceptJobRequest true "Scheduled date"
// @Success 200 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse "Job is not pending"
// @Router /jobs/{id}/accept [post]
func (h *JobController) AcceptJob(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	var req models.AcceptJobRequest
	if !bind(c, h.validator, h.logger, &req) {
		return
	}
	job, err := h.jobService.AcceptJob(c.Request.Context(), claims.OrganizationID, c.Param("id"), req.ScheduledDate, claims.UserID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to accept job", err)
		return
	}
	respond(c, http.StatusOK, "Job scheduled", job)
}

func (h *JobController) transition(c *gin.Context, message string, fn func(ctx context.Context, orgID, jobID, userID string) (*models.Job, error)) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	job, err := fn(c.Request.Context(), claims.OrganizationID, c.Param("id"), claims.UserID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to update job", err)
		return
	}
	respond(c, http.StatusOK, message, job)
}

// RejectJob handles POST /api/v1/jobs/:id/reject
// @Summary Decline a pending lead
// @Tags Job Lifecycle
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /jobs/{id}/reject [post]
func (h *JobController) RejectJob(c *gin.Context) {
	h.transition(c, "Lead rejected", h.jobService.RejectJob)
}

// CancelJob handles POST /api/v1/jobs/:id/cancel
// @Summary Cancel a scheduled job
// @Tags Job Lifecycle
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /jobs/{id}/cancel [post]
func (h *JobController) CancelJob(c *gin.Context) {
	h.transition(c, "Job cancelled", h.jobService.CancelJob)
}

// CompleteJob handles POST /api/v1/jobs/:id/complete
// @Summary Complete a scheduled job
// @Description Stops a running timer, resets payment to unpaid and creates the next visit for recurring jobs
// @Tags Job Lifecycle
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /jobs/{id}/complete [post]
func (h *JobController) CompleteJob(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	job, next, err := h.jobService.CompleteJob(c.Request.Context(), claims.OrganizationID, c.Param("id"), claims.UserID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to complete job", err)
		return
	}
	respond(c, http.StatusOK, "Job completed", gin.H{
		"job":            job,
		"nextRecurrence": next,
	})
}

// StartTimer handles POST /api/v1/jobs/:id/timer/start
// @Summary Start the work timer
// @Tags Job Timer
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse
// @Router /jobs/{id}/timer/start [post]
func (h *JobController) StartTimer(c *gin.Context) {
	h.transition(c, "Timer started", h.jobService.StartTimer)
}

// StopTimer handles POST /api/v1/jobs/:id/timer/stop
// @Summary Stop the work timer
// @Tags Job Timer
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse
// @Router /jobs/{id}/timer/stop [post]
func (h *JobController) StopTimer(c *gin.Context) {
	h.transition(c, "Timer stopped", h.jobService.StopTimer)
}

// TogglePayment handles POST /api/v1/jobs/:id/payment
// @Summary Flip a completed job between paid and unpaid
// @Tags Job Lifecycle
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /jobs/{id}/payment [post]
func (h *JobController) TogglePayment(c *gin.Context) {
	h.transition(c, "Payment status updated", h.jobService.TogglePayment)
}

// DraftETA handles POST /api/v1/jobs/:id/messages/eta
// @Summary Draft (and optionally send) an on-my-way text
// @Tags Messages
// @Security BearerAuth
// @Accept json
// @Param id path string true "Job ID"
// @Param request body models.ETARequest true "Minutes until arrival"
// @Success 200 {object} models.APIResponse
// @Router /jobs/{id}/messages/eta [post]
func (h *JobController) DraftETA(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	var req models.ETARequest
	if !bind(c, h.validator, h.logger, &req) {
		return
	}
	msg, err := h.messageService.DraftETA(c.Request.Context(), claims.OrganizationID, c.Param("id"), req.Minutes, req.Send)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to draft message", err)
		return
	}
	respond(c, http.StatusOK, "Message drafted", msg)
}
