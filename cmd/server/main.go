package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olejniktut/dc-landscaping/internal/config"
	"github.com/olejniktut/dc-landscaping/internal/handler"
	"github.com/olejniktut/dc-landscaping/internal/repository"
	"github.com/olejniktut/dc-landscaping/internal/service"
	"github.com/olejniktut/dc-landscaping/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logger.Info("Initializing config...")
	cfg := config.Get()

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database instance:", err)
	}
	if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logger.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	userRepo, err := repository.NewGormUserRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create user repository")
	}
	workerRepo, err := repository.NewGormWorkerRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create worker repository")
	}
	propertyRepo, err := repository.NewGormPropertyRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create property repository")
	}
	timeRecordRepo, err := repository.NewGormTimeRecordRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create time record repository")
	}

	var notifier service.Notifier = service.NoopNotifier{}
	if cfg.TelegramToken != "" {
		client, err := telegram.NewClient(cfg.TelegramToken)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create Telegram client")
		}
		logger.Infof("Telegram notifications enabled for chat %d", cfg.TelegramAdminChatID)
		notifier = service.NewTelegramNotifier(client, cfg.TelegramAdminChatID, logger)
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret,
		time.Duration(cfg.TokenTTLHours)*time.Hour, logger)
	workerService := service.NewWorkerService(workerRepo, logger)
	propertyService := service.NewPropertyService(propertyRepo, logger)
	timeRecordService := service.NewTimeRecordService(timeRecordRepo, workerRepo, propertyRepo, notifier, logger)
	reportService := service.NewReportService(timeRecordRepo, workerRepo, propertyRepo, logger)

	h := handler.NewHandler(authService, workerService, propertyService,
		timeRecordService, reportService, logger)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: h.Router(),
	}

	go func() {
		logger.Infof("Server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server shutdown failed")
	}

	if err := sqlDB.Close(); err != nil {
		logger.Infof("Error closing database: %v", err)
	}

	logger.Info("Server stopped gracefully")
}
