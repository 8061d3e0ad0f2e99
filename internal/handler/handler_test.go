package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/internal/repository"
	"github.com/olejniktut/dc-landscaping/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testServer struct {
	router       *gin.Engine
	adminToken   string
	workerToken  string
	workerRepo   repository.WorkerRepository
	propertyRepo repository.PropertyRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	authService := service.NewAuthService(userRepo, "test-secret", time.Hour, logger)
	workerService := service.NewWorkerService(workerRepo, logger)
	propertyService := service.NewPropertyService(propertyRepo, logger)
	timeRecordService := service.NewTimeRecordService(recordRepo, workerRepo, propertyRepo, nil, logger)
	reportService := service.NewReportService(recordRepo, workerRepo, propertyRepo, logger)

	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin123", models.RoleAdmin},
		{"worker", "worker123", models.RoleWorker},
	} {
		hash, err := service.HashPassword(u.password)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		user := &models.User{
			Username:       u.username,
			Email:          u.username + "@dclandscaping.com",
			HashedPassword: hash,
			Role:           u.role,
			IsActive:       true,
		}
		if err := userRepo.Create(user); err != nil {
			t.Fatalf("create user %s: %v", u.username, err)
		}
	}

	adminToken, _, err := authService.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	workerToken, _, err := authService.Login("worker", "worker123")
	if err != nil {
		t.Fatalf("worker login: %v", err)
	}

	h := NewHandler(authService, workerService, propertyService,
		timeRecordService, reportService, logger)

	return &testServer{
		router:       h.Router(),
		adminToken:   adminToken,
		workerToken:  workerToken,
		workerRepo:   workerRepo,
		propertyRepo: propertyRepo,
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	ts.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
	return body
}

func (ts *testServer) seedProperty(t *testing.T, name string) *models.Property {
	t.Helper()
	property := &models.Property{Name: name, IsActive: true}
	if err := ts.propertyRepo.Create(property); err != nil {
		t.Fatalf("create property %s: %v", name, err)
	}
	return property
}

func (ts *testServer) seedWorker(t *testing.T, name string, rate float64) *models.Worker {
	t.Helper()
	worker := &models.Worker{Name: name, HourlyRate: rate, IsActive: true}
	if err := ts.workerRepo.Create(worker); err != nil {
		t.Fatalf("create worker %s: %v", name, err)
	}
	return worker
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(t, http.MethodGet, "/api/health", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", recorder.Code)
	}
	if body := decodeJSON(t, recorder); body["status"] != "ok" {
		t.Errorf("body: got %v", body)
	}
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(t, http.MethodPost, "/api/auth/login", "",
		gin.H{"username": "admin", "password": "admin123"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", recorder.Code, recorder.Body.String())
	}
	body := decodeJSON(t, recorder)
	if body["access_token"] == "" || body["token_type"] != "bearer" {
		t.Errorf("login response: got %v", body)
	}

	recorder = ts.do(t, http.MethodPost, "/api/auth/login", "",
		gin.H{"username": "admin", "password": "wrong"})
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status: got %d, want 401", recorder.Code)
	}

	recorder = ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "admin"})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("missing password status: got %d, want 400", recorder.Code)
	}
}

func TestMeReturnsCallerWithoutPasswordHash(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(t, http.MethodGet, "/api/auth/me", ts.workerToken, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", recorder.Code)
	}

	body := decodeJSON(t, recorder)
	if body["username"] != "worker" {
		t.Errorf("username: got %v", body["username"])
	}
	if strings.Contains(recorder.Body.String(), "hashed_password") {
		t.Error("password hash must never be serialized")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	if recorder := ts.do(t, http.MethodGet, "/api/workers", "", nil); recorder.Code != http.StatusUnauthorized {
		t.Errorf("no token: got %d, want 401", recorder.Code)
	}
	if recorder := ts.do(t, http.MethodGet, "/api/workers", "garbage", nil); recorder.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: got %d, want 401", recorder.Code)
	}
}

func TestReportsAreAdminOnly(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(t, http.MethodGet, "/api/reports/dashboard", ts.workerToken, nil)
	if recorder.Code != http.StatusForbidden {
		t.Errorf("worker on reports: got %d, want 403", recorder.Code)
	}

	recorder = ts.do(t, http.MethodGet, "/api/reports/dashboard", ts.adminToken, nil)
	if recorder.Code != http.StatusOK {
		t.Errorf("admin on reports: got %d, want 200, body %s", recorder.Code, recorder.Body.String())
	}
}

// Admins see worker rates, workers get the field omitted entirely.
func TestWorkerRateVisibility(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(t, http.MethodPost, "/api/workers", ts.adminToken,
		gin.H{"name": "Alex", "hourly_rate": 25.0})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create worker: got %d, body %s", recorder.Code, recorder.Body.String())
	}
	if body := decodeJSON(t, recorder); body["hourly_rate"] != 25.0 {
		t.Errorf("admin view rate: got %v, want 25", body["hourly_rate"])
	}

	recorder = ts.do(t, http.MethodGet, "/api/workers", ts.workerToken, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("list workers: got %d", recorder.Code)
	}
	var views []map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("worker list: got %d entries, want 1", len(views))
	}
	if _, present := views[0]["hourly_rate"]; present {
		t.Error("hourly_rate must be omitted for non-admin callers")
	}
}

// Workers created by non-admins always get the default rate.
func TestWorkerCreateIgnoresRateFromNonAdmin(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(t, http.MethodPost, "/api/workers", ts.workerToken,
		gin.H{"name": "Mike", "hourly_rate": 99.0})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create worker: got %d, body %s", recorder.Code, recorder.Body.String())
	}

	recorder = ts.do(t, http.MethodGet, "/api/workers", ts.adminToken, nil)
	var views []map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if views[0]["hourly_rate"] != models.DefaultHourlyRate {
		t.Errorf("rate: got %v, want the default %v", views[0]["hourly_rate"], models.DefaultHourlyRate)
	}
}

func TestTimeRecordLifecycle(t *testing.T) {
	ts := newTestServer(t)
	property := ts.seedProperty(t, "Smith House")
	worker := ts.seedWorker(t, "Alex", 20)

	today := time.Now().Format("2006-01-02")
	recorder := ts.do(t, http.MethodPost, "/api/time-records", ts.adminToken, gin.H{
		"property_id":   property.ID,
		"work_date":     today,
		"start_time":    "09:00",
		"end_time":      "11:30",
		"break_minutes": 30,
		"worker_ids":    []uint{worker.ID},
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create record: got %d, body %s", recorder.Code, recorder.Body.String())
	}
	body := decodeJSON(t, recorder)
	if body["total_minutes"] != 120.0 {
		t.Errorf("total minutes: got %v, want 120", body["total_minutes"])
	}
	if body["total_cost"] != 40.0 {
		t.Errorf("total cost: got %v, want 40", body["total_cost"])
	}
	recordID := uint(body["id"].(float64))

	recorder = ts.do(t, http.MethodPut, fmt.Sprintf("/api/time-records/%d", recordID),
		ts.adminToken, gin.H{"break_minutes": 90})
	if recorder.Code != http.StatusOK {
		t.Fatalf("update record: got %d, body %s", recorder.Code, recorder.Body.String())
	}
	if body := decodeJSON(t, recorder); body["total_minutes"] != 60.0 {
		t.Errorf("recomputed minutes: got %v, want 60", body["total_minutes"])
	}

	recorder = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/time-records/%d", recordID),
		ts.adminToken, nil)
	if recorder.Code != http.StatusNoContent {
		t.Fatalf("delete record: got %d, want 204", recorder.Code)
	}

	recorder = ts.do(t, http.MethodGet, fmt.Sprintf("/api/time-records/%d", recordID),
		ts.adminToken, nil)
	if recorder.Code != http.StatusNotFound {
		t.Errorf("deleted record: got %d, want 404", recorder.Code)
	}
}

func TestTimerStopIsSingleShot(t *testing.T) {
	ts := newTestServer(t)
	property := ts.seedProperty(t, "Smith House")

	recorder := ts.do(t, http.MethodPost, "/api/time-records/start", ts.workerToken,
		gin.H{"property_id": property.ID})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("start timer: got %d, body %s", recorder.Code, recorder.Body.String())
	}
	recordID := uint(decodeJSON(t, recorder)["id"].(float64))

	recorder = ts.do(t, http.MethodPost, "/api/time-records/stop", ts.workerToken,
		gin.H{"time_record_id": recordID, "end_time": "23:59"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("stop timer: got %d, body %s", recorder.Code, recorder.Body.String())
	}
	if body := decodeJSON(t, recorder); body["end_time"] == nil {
		t.Error("stopped record must carry an end time")
	}

	recorder = ts.do(t, http.MethodPost, "/api/time-records/stop", ts.workerToken,
		gin.H{"time_record_id": recordID, "end_time": "23:59"})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("second stop: got %d, want 400", recorder.Code)
	}
}

func TestRecordResponsesMaskRatesForWorkers(t *testing.T) {
	ts := newTestServer(t)
	property := ts.seedProperty(t, "Smith House")
	worker := ts.seedWorker(t, "Alex", 20)

	today := time.Now().Format("2006-01-02")
	recorder := ts.do(t, http.MethodPost, "/api/time-records", ts.adminToken, gin.H{
		"property_id": property.ID,
		"work_date":   today,
		"start_time":  "09:00",
		"end_time":    "10:00",
		"worker_ids":  []uint{worker.ID},
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create record: got %d", recorder.Code)
	}
	recordID := uint(decodeJSON(t, recorder)["id"].(float64))

	recorder = ts.do(t, http.MethodGet, fmt.Sprintf("/api/time-records/%d", recordID),
		ts.workerToken, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("get record: got %d", recorder.Code)
	}
	workers := decodeJSON(t, recorder)["workers"].([]interface{})
	if rate := workers[0].(map[string]interface{})["hourly_rate"]; rate != 0.0 {
		t.Errorf("worker rate must be masked: got %v", rate)
	}
}

func TestReportSummaryValidation(t *testing.T) {
	ts := newTestServer(t)

	recorder := ts.do(t, http.MethodGet, "/api/reports/summary", ts.adminToken, nil)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("missing dates: got %d, want 400", recorder.Code)
	}

	recorder = ts.do(t, http.MethodGet,
		"/api/reports/summary?start_date=2025-01-01&end_date=2025-12-31&cleanup_type=winter",
		ts.adminToken, nil)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("bad cleanup type: got %d, want 400", recorder.Code)
	}
}

func TestReportExportDownloadsWorkbook(t *testing.T) {
	ts := newTestServer(t)
	property := ts.seedProperty(t, "Smith House")
	worker := ts.seedWorker(t, "Alex", 20)

	today := time.Now().Format("2006-01-02")
	recorder := ts.do(t, http.MethodPost, "/api/time-records", ts.adminToken, gin.H{
		"property_id": property.ID,
		"work_date":   today,
		"start_time":  "09:00",
		"end_time":    "11:00",
		"worker_ids":  []uint{worker.ID},
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create record: got %d", recorder.Code)
	}

	path := fmt.Sprintf("/api/reports/export?start_date=%s&end_date=%s", today, today)
	recorder = ts.do(t, http.MethodGet, path, ts.adminToken, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("export: got %d, body %s", recorder.Code, recorder.Body.String())
	}

	disposition := recorder.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, ".xlsx") {
		t.Errorf("content disposition: got %q", disposition)
	}
	contentType := recorder.Header().Get("Content-Type")
	if !strings.Contains(contentType, "spreadsheetml") {
		t.Errorf("content type: got %q", contentType)
	}
	if recorder.Body.Len() == 0 {
		t.Error("export body must not be empty")
	}
}
