// File: clinicbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/cron"
	"clinicbook/database"
	blockeddayRepo "clinicbook/database/repository/blockedday"
	professionalRepo "clinicbook/database/repository/professional"
	reservationRepo "clinicbook/database/repository/reservation"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/handlers"
	"clinicbook/routes"
	"clinicbook/services/availability"
	"clinicbook/services/confirmation"
	"clinicbook/services/holiday"
	"clinicbook/services/notification"
	"clinicbook/services/reservation"
	"clinicbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// repositories.
	profRepo := professionalRepo.NewMongoProfessionalRepo()
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	blockedRepo := blockeddayRepo.NewMongoBlockedDayRepo()
	resRepo := reservationRepo.NewMongoReservationRepo()

	for name, ensure := range map[string]func() error{
		"schedule_blocks": schedRepo.EnsureIndexes,
		"blocked_days":    blockedRepo.EnsureIndexes,
		"reservations":    resRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// async notification queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	dispatcher := notification.NewAsynqDispatcher(asynqClient)
	cron.InitNotifyWorker()

	// services.
	holidayCalendar := holiday.NewAPICalendar(utils.GetCacheClient())

	availabilityService := &availability.DefaultAvailabilityService{
		Professionals: profRepo,
		Schedules:     schedRepo,
		BlockedDays:   blockedRepo,
		Reservations:  resRepo,
		Holidays:      holidayCalendar,
	}

	ledgerService := &reservation.DefaultLedgerService{
		Repo:         resRepo,
		Availability: availabilityService,
		Lock:         reservation.NewSlotLock(utils.GetLockClient()),
		Notifier:     dispatcher,
	}

	tokenService := &confirmation.DefaultTokenService{
		Repo:          resRepo,
		Professionals: profRepo,
		Notifier:      dispatcher,
		TokenTTL:      time.Duration(config.AppConfig.TokenTTLHours) * time.Hour,
		BaseURL:       config.AppConfig.PublicBaseURL,
	}

	// handlers.
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	reservationHandler := handlers.NewReservationHandler(ledgerService, tokenService)
	confirmationHandler := handlers.NewConfirmationHandler(tokenService)
	scheduleHandler := handlers.NewScheduleHandler(schedRepo, blockedRepo)

	routes.RegisterRoutes(router, availabilityHandler, reservationHandler, confirmationHandler, scheduleHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Error("mongo disconnect failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
