package handler

import (
	"net/http"

	"github.com/olejniktut/dc-landscaping/internal/middleware"
	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/internal/service"

	"github.com/gin-gonic/gin"
)

type workerRequest struct {
	Name       string   `json:"name" binding:"required"`
	Phone      string   `json:"phone"`
	HourlyRate *float64 `json:"hourly_rate"`
}

type workerUpdateRequest struct {
	Name       *string  `json:"name"`
	Phone      *string  `json:"phone"`
	HourlyRate *float64 `json:"hourly_rate"`
	IsActive   *bool    `json:"is_active"`
}

// workerResponse hides the hourly rate from non-admin callers: the
// field is absent rather than zeroed.
type workerResponse struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	IsActive   bool     `json:"is_active"`
}

func workerView(caller *models.User, worker models.Worker) workerResponse {
	view := workerResponse{
		ID:       worker.ID,
		Name:     worker.Name,
		Phone:    worker.Phone,
		IsActive: worker.IsActive,
	}
	if caller.IsAdmin() {
		rate := worker.HourlyRate
		view.HourlyRate = &rate
	}
	return view
}

func (h *Handler) ListWorkers(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	includeInactive := c.Query("include_inactive") == "true"

	workers, err := h.workerService.List(includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]workerResponse, 0, len(workers))
	for _, worker := range workers {
		views = append(views, workerView(caller, worker))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) GetWorker(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	worker, err := h.workerService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workerView(middleware.CurrentUser(c), *worker))
}

func (h *Handler) CreateWorker(c *gin.Context) {
	var req workerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "worker name is required"})
		return
	}

	caller := middleware.CurrentUser(c)
	worker, err := h.workerService.Create(caller, service.WorkerInput{
		Name:       req.Name,
		Phone:      req.Phone,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workerView(caller, *worker))
}

func (h *Handler) UpdateWorker(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req workerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	caller := middleware.CurrentUser(c)
	worker, err := h.workerService.Update(caller, id, service.WorkerUpdate{
		Name:       req.Name,
		Phone:      req.Phone,
		HourlyRate: req.HourlyRate,
		IsActive:   req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workerView(caller, *worker))
}

// DeleteWorker deactivates: history stays intact.
func (h *Handler) DeleteWorker(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.workerService.Deactivate(middleware.CurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
