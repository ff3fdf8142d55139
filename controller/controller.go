package controller

import (
	"context"
	"greenroute-backend/middelware"
	"greenroute-backend/models"
	"greenroute-backend/services"
	"greenroute-backend/utils/logger"
	"greenroute-backend/utils/metrics"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Job      *JobController
	Schedule *ScheduleController
	Quote    *QuoteController
	Settings *SettingsController

	jwtManager   *middelware.JWTManager
	workerHealth func() map[string]interface{}
}

func NewController(ctx context.Context, svc services.ServiceContainerInterface, jwtManager *middelware.JWTManager, log logger.Logger) *Controller {
	return &Controller{
		Job:        NewJobController(ctx, svc.GetJobService(), svc.GetMessageService(), log),
		Schedule:   NewScheduleController(ctx, svc.GetScheduleService(), svc.GetJobService(), log),
		Quote:      NewQuoteController(ctx, svc.GetQuoteService(), svc.GetJobService(), log),
		Settings:   NewSettingsController(ctx, svc.GetSettingsService(), svc.GetScheduleService(), svc.GetLogService(), log),
		jwtManager: jwtManager,
	}
}

// SetWorkerHealth adds the weather worker's status to the health endpoint
func (c *Controller) SetWorkerHealth(fn func() map[string]interface{}) {
	c.workerHealth = fn
}

func (c *Controller) RegisterRoutes(config *models.Config, r *gin.Engine, basePath string) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Swagger JSON document
	r.GET("/swagger/doc.json", func(ctx *gin.Context) {
		if _, err := os.Stat(config.SwaggerDocPath); err != nil {
			respondError(ctx, http.StatusNotFound, "API docs have not been generated", "NotFound", "run swag init to build "+config.SwaggerDocPath, "")
			return
		}
		ctx.Header("Content-Type", "application/json")
		ctx.File(config.SwaggerDocPath)
	})

	v1 := r.Group(basePath)

	// Health check endpoint (no auth required)
	v1.GET("/health", func(ctx *gin.Context) {
		body := gin.H{
			"status":  "healthy",
			"version": config.AppVersion,
			"service": config.AppName,
		}
		if c.workerHealth != nil {
			body["worker"] = c.workerHealth()
		}
		ctx.JSON(http.StatusOK, body)
	})

	// Booking form routes - authentication not required
	public := v1.Group("/public/organizations/:orgID")
	public.POST("/quote", c.Quote.PublicQuote)
	public.POST("/bookings", c.Quote.PublicBooking)

	admin := v1.Group("", c.jwtManager.AuthMiddleware())

	jobs := admin.Group("/jobs")
	jobs.POST("", c.Job.CreateJob)
	jobs.GET("", c.Job.GetJobs)
	jobs.GET("/:id", c.Job.GetJob)
	jobs.PATCH("/:id", c.Job.UpdateJob)
	jobs.DELETE("/:id", c.jwtManager.RequireRole(models.RoleOwner, models.RoleAdmin), c.Job.DeleteJob)
	jobs.POST("/:id/accept", c.Job.AcceptJob)
	jobs.POST("/:id/reject", c.Job.RejectJob)
	jobs.POST("/:id/complete", c.Job.CompleteJob)
	jobs.POST("/:id/cancel", c.Job.CancelJob)
	jobs.POST("/:id/timer/start", c.Job.StartTimer)
	jobs.POST("/:id/timer/stop", c.Job.StopTimer)
	jobs.POST("/:id/payment", c.Job.TogglePayment)
	jobs.POST("/:id/messages/eta", c.Job.DraftETA)

	schedule := admin.Group("/schedule")
	schedule.GET("", c.Schedule.GetSchedule)
	schedule.GET("/day", c.Schedule.GetDayPlan)
	schedule.POST("/reorder", c.Schedule.Reorder)
	schedule.POST("/optimize", c.Schedule.Optimize)
	schedule.POST("/rain-delay", c.Schedule.RainDelay)

	admin.POST("/quote", c.Quote.Quote)

	admin.GET("/settings", c.Settings.GetSettings)
	admin.PUT("/settings", c.jwtManager.RequireRole(models.RoleOwner, models.RoleAdmin), c.Settings.UpdateSettings)
	admin.GET("/weather/outlook", c.Settings.GetOutlook)
	admin.GET("/logs", c.Settings.GetLogs)
}
