package service

import (
	"io"
	"testing"
	"time"

	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the services against an in-memory sqlite database.
type testEnv struct {
	workerRepo   repository.WorkerRepository
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository

	auth       *AuthService
	workers    *WorkerService
	properties *PropertyService
	records    *TimeRecordService
	reports    *ReportService

	admin *models.User
	crew  *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get database instance: %v", err)
	}
	// A single connection keeps every session on the same in-memory
	// database.
	sqlDB.SetMaxOpenConns(1)

	userRepo, err := repository.NewGormUserRepository(db, logger)
	if err != nil {
		t.Fatalf("create user repository: %v", err)
	}
	workerRepo, err := repository.NewGormWorkerRepository(db, logger)
	if err != nil {
		t.Fatalf("create worker repository: %v", err)
	}
	propertyRepo, err := repository.NewGormPropertyRepository(db, logger)
	if err != nil {
		t.Fatalf("create property repository: %v", err)
	}
	recordRepo, err := repository.NewGormTimeRecordRepository(db, logger)
	if err != nil {
		t.Fatalf("create time record repository: %v", err)
	}

	return &testEnv{
		workerRepo:   workerRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		auth:         NewAuthService(userRepo, "test-secret", time.Hour, logger),
		workers:      NewWorkerService(workerRepo, logger),
		properties:   NewPropertyService(propertyRepo, logger),
		records:      NewTimeRecordService(recordRepo, workerRepo, propertyRepo, nil, logger),
		reports:      NewReportService(recordRepo, workerRepo, propertyRepo, logger),
		admin:        &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin, IsActive: true},
		crew:         &models.User{ID: 2, Username: "worker", Role: models.RoleWorker, IsActive: true},
	}
}

func (env *testEnv) createWorker(t *testing.T, name string, rate float64) *models.Worker {
	t.Helper()
	worker := &models.Worker{Name: name, HourlyRate: rate, IsActive: true}
	if err := env.workerRepo.Create(worker); err != nil {
		t.Fatalf("create worker %s: %v", name, err)
	}
	return worker
}

func (env *testEnv) createProperty(t *testing.T, name string, spring, fall bool) *models.Property {
	t.Helper()
	property := &models.Property{
		Name:            name,
		IsSpringCleanup: spring,
		IsFallCleanup:   fall,
		IsActive:        true,
	}
	if err := env.propertyRepo.Create(property); err != nil {
		t.Fatalf("create property %s: %v", name, err)
	}
	return property
}

// createClosedRecord persists a manual entry with both times set.
func (env *testEnv) createClosedRecord(t *testing.T, propertyID uint, workDate time.Time,
	startTime, endTime string, breakMinutes int, workerIDs []uint) *models.TimeRecord {
	t.Helper()
	record, err := env.records.Create(TimeRecordInput{
		PropertyID:   propertyID,
		WorkDate:     workDate,
		StartTime:    startTime,
		EndTime:      &endTime,
		BreakMinutes: breakMinutes,
		WorkerIDs:    workerIDs,
	})
	if err != nil {
		t.Fatalf("create closed record: %v", err)
	}
	return record
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
