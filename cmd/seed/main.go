package main

import (
	"github.com/olejniktut/dc-landscaping/internal/config"
	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/internal/repository"
	"github.com/olejniktut/dc-landscaping/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Seeds the initial users plus a few sample workers and properties.
// Safe to re-run: skips everything once the admin user exists.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	cfg := config.Get()

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
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
	if _, err := repository.NewGormTimeRecordRepository(db, logger); err != nil {
		logger.WithError(err).Fatal("Failed to create time record repository")
	}

	existing, err := userRepo.GetByUsername("admin")
	if err != nil {
		logger.WithError(err).Fatal("Failed to check existing admin")
	}
	if existing != nil {
		logger.Info("Database already seeded. Skipping...")
		return
	}

	logger.Info("Seeding database...")

	users := []struct {
		username string
		email    string
		password string
		role     string
	}{
		{"admin", "admin@dclandscaping.com", "admin123", models.RoleAdmin},
		{"worker", "worker@dclandscaping.com", "worker123", models.RoleWorker},
	}
	for _, u := range users {
		hash, err := service.HashPassword(u.password)
		if err != nil {
			logger.WithError(err).Fatal("Failed to hash password")
		}
		user := &models.User{
			Username:       u.username,
			Email:          u.email,
			HashedPassword: hash,
			Role:           u.role,
			IsActive:       true,
		}
		if err := userRepo.Create(user); err != nil {
			logger.WithError(err).Fatalf("Failed to create user %s", u.username)
		}
	}
	logger.Info("Created users: admin, worker")

	workers := []models.Worker{
		{Name: "Alex", Phone: "204-555-0101", HourlyRate: 20.00, IsActive: true},
		{Name: "Mike", Phone: "204-555-0102", HourlyRate: 22.00, IsActive: true},
		{Name: "John", Phone: "204-555-0103", HourlyRate: 20.00, IsActive: true},
	}
	for i := range workers {
		if err := workerRepo.Create(&workers[i]); err != nil {
			logger.WithError(err).Fatalf("Failed to create worker %s", workers[i].Name)
		}
	}
	logger.Info("Created sample workers: Alex, Mike, John")

	properties := []models.Property{
		{Name: "Smith House", Address: "123 Main St", IsActive: true},
		{Name: "Johnson Residence", Address: "456 Oak Ave", IsSpringCleanup: true, IsActive: true},
		{Name: "City Park", Address: "789 Park Blvd", IsFallCleanup: true, IsActive: true},
	}
	for i := range properties {
		if err := propertyRepo.Create(&properties[i]); err != nil {
			logger.WithError(err).Fatalf("Failed to create property %s", properties[i].Name)
		}
	}
	logger.Info("Created sample properties")

	logger.Info("Database seeded successfully")
	logger.Info("Login credentials: admin/admin123, worker/worker123")
}
