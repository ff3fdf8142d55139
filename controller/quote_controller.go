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

// QuoteController serves the admin quote tool and the public booking form
type QuoteController struct {
	ctx          context.Context
	quoteService services.QuoteServiceInterface
	jobService   services.JobServiceInterface
	logger       logger.Logger
	validator    *validator.Validate
}

func NewQuoteController(ctx context.Context, quoteService services.QuoteServiceInterface, jobService services.JobServiceInterface, logger logger.Logger) *QuoteController {
	return &QuoteController{
		ctx:          ctx,
		quoteService: quoteService,
		jobService:   jobService,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *QuoteController) quote(c *gin.Context, orgID string) {
	var req models.QuoteRequest
	if !bind(c, h.validator, h.logger, &req) {
		return
	}
	quote, err := h.quoteService.Quote(c.Request.Context(), orgID, &req)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to price quote", err)
		return
	}
	respond(c, http.StatusOK, "Quote calculated", quote)
}

// Quote handles POST /api/v1/quote
// @Summary Price a quote for the caller's organization
// @Tags Quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.QuoteRequest true "Quote request"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /quote [post]
func (h *QuoteController) Quote(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		return
	}
	h.quote(c, claims.OrganizationID)
}

// PublicQuote handles POST /api/v1/public/organizations/:orgID/quote
// @Summary Price a quote from the public booking form
// @Tags Public
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param request body models.QuoteRequest true "Quote request"
// @Success 200 {object} models.APIResponse
// @Router /public/organizations/{orgID}/quote [post]
func (h *QuoteController) PublicQuote(c *gin.Context) {
	h.quote(c, c.Param("orgID"))
}

// PublicBooking handles POST /api/v1/public/organizations/:orgID/bookings
// @Summary Submit a booking request; it becomes a pending lead
// @Tags Public
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param request body models.BookingRequest true "Booking request"
// @Success 201 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /public/organizations/{orgID}/bookings [post]
func (h *QuoteController) PublicBooking(c *gin.Context) {
	var req models.BookingRequest
	if !bind(c, h.validator, h.logger, &req) {
		return
	}

	job, quote, err := h.jobService.CreateLead(c.Request.Context(), c.Param("orgID"), &req)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to submit booking", err)
		return
	}
	respond(c, http.StatusCreated, "Booking received", gin.H{
		"jobID":  job.JobID,
		"status": job.Status,
		"quote":  quote,
	})
}
