package main

import (
	"os"
	"os/signal"
	"syscall"
	"worklog-service/internal/config"
	"worklog-service/internal/handler"
	"worklog-service/internal/notify"
	"worklog-service/internal/repository"
	"worklog-service/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetServerConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite limitation
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// SQLite needs foreign keys switched on per connection
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	employeeRepo, err := repository.NewEmployeeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee repository")
	}

	recordRepo, err := repository.NewGormDailyLogRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create daily log repository")
	}

	feedbackRepo, err := repository.NewGormFeedbackRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create feedback repository")
	}

	// Seed the base admin from config
	if admin, err := employeeRepo.EnsureAdmin(cfg.BaseAdminEmail, cfg.BaseAdminName); err != nil {
		logrus.Infof("Warning: Failed to initialize admin: %v", err)
	} else if admin != nil {
		logrus.Infof("Admin initialized: %s", admin.Email)
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create Telegram notifier")
		}
		notifier = tg
	} else {
		logrus.Info("No Telegram token configured, notifications disabled")
	}

	aggregator := service.NewWeekAggregator(recordRepo)
	tracker := service.NewDeadlineTracker(cfg.ReviewSLAHours)
	worklogService := service.NewWorklogService(recordRepo, aggregator)
	reviewService := service.NewReviewService(recordRepo, feedbackRepo, employeeRepo, aggregator, notifier)
	rollupService := service.NewRollupService(aggregator, employeeRepo, tracker)

	h := handler.NewHandler(worklogService, reviewService, rollupService, employeeRepo)

	app := fiber.New()
	h.RegisterRoutes(app)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logrus.WithError(err).Fatal("HTTP server stopped")
		}
	}()

	logrus.Infof("Server started on %s. Press Ctrl+C to stop.", cfg.HTTPAddr)
	<-stop

	if err := app.Shutdown(); err != nil {
		logrus.Infof("Error shutting down server: %v", err)
	}

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}
