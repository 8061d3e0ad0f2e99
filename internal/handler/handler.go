package handler

import (
	"github.com/olejniktut/dc-landscaping/internal/middleware"
	"github.com/olejniktut/dc-landscaping/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authService       *service.AuthService
	workerService     *service.WorkerService
	propertyService   *service.PropertyService
	timeRecordService *service.TimeRecordService
	reportService     *service.ReportService
	logger            *logrus.Logger
}

func NewHandler(
	authService *service.AuthService,
	workerService *service.WorkerService,
	propertyService *service.PropertyService,
	timeRecordService *service.TimeRecordService,
	reportService *service.ReportService,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		workerService:     workerService,
		propertyService:   propertyService,
		timeRecordService: timeRecordService,
		reportService:     reportService,
		logger:            logger,
	}
}

// Router builds the full route tree. Reports are admin-only; everything
// under /api except login and health requires a valid token.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(h.logger), middleware.CORS())

	router.GET("/", h.Health)
	router.GET("/api/health", h.Health)

	authMiddleware := middleware.NewAuthMiddleware(h.authService)

	api := router.Group("/api")
	api.POST("/auth/login", h.Login)

	authorized := api.Group("", authMiddleware.RequireAuth())
	authorized.GET("/auth/me", h.Me)

	workers := authorized.Group("/workers")
	workers.GET("", h.ListWorkers)
	workers.GET("/:id", h.GetWorker)
	workers.POST("", h.CreateWorker)
	workers.PUT("/:id", h.UpdateWorker)
	workers.DELETE("/:id", h.DeleteWorker)

	properties := authorized.Group("/properties")
	properties.GET("", h.ListProperties)
	properties.GET("/:id", h.GetProperty)
	properties.POST("", h.CreateProperty)
	properties.PUT("/:id", h.UpdateProperty)
	properties.DELETE("/:id", h.DeleteProperty)

	timeRecords := authorized.Group("/time-records")
	timeRecords.GET("", h.ListTimeRecords)
	timeRecords.GET("/today", h.TodayTimeRecords)
	timeRecords.POST("/start", h.StartTimer)
	timeRecords.POST("/stop", h.StopTimer)
	timeRecords.GET("/:id", h.GetTimeRecord)
	timeRecords.POST("", h.CreateTimeRecord)
	timeRecords.PUT("/:id", h.UpdateTimeRecord)
	timeRecords.DELETE("/:id", h.DeleteTimeRecord)

	reports := authorized.Group("/reports", authMiddleware.RequireAdmin())
	reports.GET("/dashboard", h.Dashboard)
	reports.GET("/summary", h.ReportSummary)
	reports.GET("/preview", h.ReportPreview)
	reports.GET("/export", h.ReportExport)

	return router
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
