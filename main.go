package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roamly/config"
	"roamly/cron"
	"roamly/database"
	appointmentRepo "roamly/database/repository/appointment"
	"roamly/handlers"
	"roamly/middleware"
	"roamly/routes"
	"roamly/services/notification"
	"roamly/services/scheduling"
	"roamly/services/tasks"
	"roamly/services/travel"
	"roamly/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitTravelCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Travel estimation: Google Distance Matrix behind a Redis cache.
	googleEstimator := travel.NewGoogleEstimator(
		config.AppConfig.GoogleAPIKey,
		time.Duration(config.AppConfig.TravelTimeoutSeconds)*time.Second,
		config.AppConfig.TravelCallsPerSecond,
	)
	estimator := travel.NewCachedEstimator(
		googleEstimator,
		utils.GetTravelCacheClient(),
		time.Duration(config.AppConfig.TravelCacheTTLMinutes)*time.Minute,
	)

	// Core availability engine.
	engine := scheduling.NewDefaultAvailabilityEngine(estimator)
	engine.Granularity = config.AppConfig.SlotGranularityMinutes

	// Repositories and reminder pipeline.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	reminderScheduler := tasks.NewReminderScheduler(estimator)
	cron.InitReminderWorker(notification.NewLogNotifier())

	availabilityHandler := handlers.NewAvailabilityHandler(engine, estimator, apptRepo, logger)
	appointmentHandler := handlers.NewAppointmentHandler(apptRepo, reminderScheduler, logger)

	routes.RegisterRoutes(router, availabilityHandler, appointmentHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
