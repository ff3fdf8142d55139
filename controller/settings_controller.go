package controller

import (
	"context"
	"greenroute-backend/models"
	"greenroute-backend/services"
	"greenroute-backend/utils/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type SettingsController struct {
	ctx             context.Context
	settingsService services.SettingsServiceInterface
	scheduleService services.ScheduleServiceInterface
	logService      services.LogServiceInterface
	logger          logger.Logger
	validator       *validator.Validate
}

func NewSettingsController(ctx context.Context, settingsService services.SettingsServiceInterface, scheduleService services.ScheduleServiceInterface, logService services.LogServiceInterface, logger logger.Logger) *SettingsController {
	return &SettingsController{
		ctx:             ctx,
		settingsService: settingsService,
		scheduleService: scheduleService,
		logService:      logService,
		logger:          logger,
		validator:       validator.New(),
	}
}

// GetSettings handles GET /api/v1/settings
// @Summary Business settings for the caller's organization
// @Tags Settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /settings [get]
func (h *SettingsController) GetSettings(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.GetSettings(c.Request.Context(), claims.OrganizationID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to load settings", err)
		return
	}
	respond(c, http.StatusOK, "Settings retrieved successfully", settings)
}

// UpdateSettings handles PUT /api/v1/settings
// @Summary Replace the organization's business settings
// @Tags Settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.BusinessSettings true "Settings"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 403 {object} models.APIResponse
// @Router /settings [put]
func (h *SettingsController) UpdateSettings(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	var req models.BusinessSettings
	if !bind(c, h.validator, h.logger, &req) {
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), claims.OrganizationID, &req, claims.UserID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to update settings", err)
		return
	}
	respond(c, http.StatusOK, "Settings updated successfully", settings)
}

// GetOutlook handles GET /api/v1/weather/outlook
// @Summary Scored forecast for the organization's weather city
// @Description available=false when the weather provider cannot be reached
// @Tags Weather
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /weather/outlook [get]
func (h *SettingsController) GetOutlook(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	outlook, err := h.scheduleService.Outlook(c.Request.Context(), claims.OrganizationID)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to load outlook", err)
		return
	}
	respond(c, http.StatusOK, "Outlook retrieved successfully", outlook)
}

// GetLogs handles GET /api/v1/logs
// @Summary Communications log, newest first
// @Tags Logs
// @Security BearerAuth
// @Produce json
// @Param jobID query string false "Only entries for this job"
// @Param limit query int false "Maximum entries" default(100)
// @Success 200 {object} models.APIResponse
// @Router /logs [get]
func (h *SettingsController) GetLogs(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, "Invalid limit", "ValidationError", "limit must be a non-negative integer", "limit")
			return
		}
		limit = n
	}

	logs, err := h.logService.ListLogs(c.Request.Context(), claims.OrganizationID, c.Query("jobID"), limit)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to retrieve logs", err)
		return
	}
	respond(c, http.StatusOK, "Logs retrieved successfully", models.ListResponse{Items: logs, Count: len(logs)})
}
