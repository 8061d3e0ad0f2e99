package handler

import (
	"net/http"
	"strconv"

	"github.com/olejniktut/dc-landscaping/internal/middleware"
	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/internal/repository"
	"github.com/olejniktut/dc-landscaping/internal/service"

	"github.com/gin-gonic/gin"
)

type timeRecordCreateRequest struct {
	PropertyID   uint    `json:"property_id" binding:"required"`
	WorkDate     string  `json:"work_date" binding:"required"`
	StartTime    string  `json:"start_time" binding:"required"`
	EndTime      *string `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	WorkerIDs    []uint  `json:"worker_ids"`
	Notes        string  `json:"notes"`
}

type timeRecordUpdateRequest struct {
	PropertyID   *uint   `json:"property_id"`
	WorkDate     *string `json:"work_date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	BreakMinutes *int    `json:"break_minutes"`
	Notes        *string `json:"notes"`
	WorkerIDs    *[]uint `json:"worker_ids"`
}

type timerStartRequest struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	WorkerIDs  []uint `json:"worker_ids"`
}

type timerStopRequest struct {
	TimeRecordID uint    `json:"time_record_id" binding:"required"`
	EndTime      *string `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	WorkerIDs    []uint  `json:"worker_ids"`
}

// maskRates blanks worker rates on record responses for non-admin
// callers before they leave the API.
func maskRates(caller *models.User, records []models.TimeRecord) []models.TimeRecord {
	if caller.IsAdmin() {
		return records
	}
	for i := range records {
		for j := range records[i].Workers {
			records[i].Workers[j].HourlyRate = 0
		}
	}
	return records
}

func maskRecordRates(caller *models.User, record *models.TimeRecord) *models.TimeRecord {
	if caller.IsAdmin() {
		return record
	}
	for i := range record.Workers {
		record.Workers[i].HourlyRate = 0
	}
	return record
}

func (h *Handler) ListTimeRecords(c *gin.Context) {
	var filter repository.RecordFilter

	if value := c.Query("start_date"); value != "" {
		date, err := parseDate(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		filter.StartDate = &date
	}
	if value := c.Query("end_date"); value != "" {
		date, err := parseDate(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		filter.EndDate = &date
	}
	if value := c.Query("property_id"); value != "" {
		id, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property_id"})
			return
		}
		propertyID := uint(id)
		filter.PropertyID = &propertyID
	}
	if value := c.Query("worker_id"); value != "" {
		id, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid worker_id"})
			return
		}
		workerID := uint(id)
		filter.WorkerID = &workerID
	}

	records, err := h.timeRecordService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, maskRates(middleware.CurrentUser(c), records))
}

func (h *Handler) TodayTimeRecords(c *gin.Context) {
	records, err := h.timeRecordService.Today()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, maskRates(middleware.CurrentUser(c), records))
}

func (h *Handler) GetTimeRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	record, err := h.timeRecordService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, maskRecordRates(middleware.CurrentUser(c), record))
}

func (h *Handler) CreateTimeRecord(c *gin.Context) {
	var req timeRecordCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id, work_date and start_time are required"})
		return
	}

	workDate, err := parseDate(req.WorkDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work_date"})
		return
	}

	record, err := h.timeRecordService.Create(service.TimeRecordInput{
		PropertyID:   req.PropertyID,
		WorkDate:     workDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		WorkerIDs:    req.WorkerIDs,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, maskRecordRates(middleware.CurrentUser(c), record))
}

func (h *Handler) StartTimer(c *gin.Context) {
	var req timerStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id is required"})
		return
	}

	record, err := h.timeRecordService.Start(req.PropertyID, req.WorkerIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, maskRecordRates(middleware.CurrentUser(c), record))
}

func (h *Handler) StopTimer(c *gin.Context) {
	var req timerStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time_record_id is required"})
		return
	}

	record, err := h.timeRecordService.Stop(service.TimerStop{
		RecordID:     req.TimeRecordID,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		WorkerIDs:    req.WorkerIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, maskRecordRates(middleware.CurrentUser(c), record))
}

func (h *Handler) UpdateTimeRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req timeRecordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := service.TimeRecordUpdate{
		PropertyID:   req.PropertyID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		Notes:        req.Notes,
		WorkerIDs:    req.WorkerIDs,
	}
	if req.WorkDate != nil {
		workDate, err := parseDate(*req.WorkDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid work_date"})
			return
		}
		update.WorkDate = &workDate
	}

	record, err := h.timeRecordService.Update(middleware.CurrentUser(c), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, maskRecordRates(middleware.CurrentUser(c), record))
}

func (h *Handler) DeleteTimeRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.timeRecordService.Delete(middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
