package main

import (
	"context"
	"errors"
	"greenroute-backend/controller"
	"greenroute-backend/dal"
	"greenroute-backend/infrastructure"
	"greenroute-backend/middelware"
	"greenroute-backend/models"
	"greenroute-backend/repository"
	"greenroute-backend/services"
	"greenroute-backend/utils"
	"greenroute-backend/utils/logger"
	"greenroute-backend/utils/metrics"
	"greenroute-backend/worker"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title GreenRoute Backend API
// @version 1.0
// @description Lawn-care route scheduling and job lifecycle API
// @description
// @description Leads arrive from the public booking form as pending jobs. Operators accept
// @description them onto a day, work through the day's route, complete visits and track payment.
// @description Recurring jobs create their next visit on completion.

// @host localhost:8081
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Enter 'Bearer' [space] and then your token in the text input below.
func main() {
	Init()
	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Debugf("Config loaded: %s", utils.PrintPrettyJSON(redacted(config)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dalContainer, err := dal.NewDALContainer(config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to initialize database client: %v", err)
	}
	db := dalContainer.GetDatabaseClient()

	// DynamoDB tables are bootstrapped by the worker; the memory client has none until now
	if config.DatabaseDriver == "memory" {
		if err := infrastructure.EnsureTables(ctx, db, config, appLogger); err != nil {
			appLogger.Fatalf("Failed to create tables: %v", err)
		}
	}

	metrics.RegisterDefault()

	repo := repository.NewRepository(db, config, appLogger)
	svc := services.NewService(repo, appLogger, config)
	jwtManager := middelware.NewJWTManager(config, appLogger)

	weatherWorker, err := worker.NewService(config, db, svc.GetScheduleService(), appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create weather worker: %v", err)
	}
	weatherWorker.StartInBackground(ctx)

	if config.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	logging := middelware.NewLoggingMiddleware(appLogger)
	r.Use(logging.Recovery(), logging.StructuredLogger(), logging.Metrics())
	r.Use(middelware.NewCORSMiddleware(config).CORS())

	c := controller.NewController(ctx, svc, jwtManager, appLogger)
	c.SetWorkerHealth(weatherWorker.GetHealthStatus)
	c.RegisterRoutes(config, r, config.BasePath)

	srv := &http.Server{
		Addr:              config.AppHost + ":" + config.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infof("Starting server on %s:%s", config.AppHost, config.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Server shutdown: %v", err)
	}
	if err := weatherWorker.Stop(); err != nil {
		appLogger.Errorf("Worker shutdown: %v", err)
	}
}

func redacted(cfg *models.Config) models.Config {
	c := *cfg
	for _, secret := range []*string{&c.JWTSecret, &c.AWSSecretAccessKey, &c.RedisPassword, &c.OpenAIAPIKey, &c.TwilioAuthToken, &c.SendGridAPIKey} {
		if *secret != "" {
			*secret = "***"
		}
	}
	return c
}
