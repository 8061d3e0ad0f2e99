package handler

import (
	"net/http"

	"github.com/olejniktut/dc-landscaping/internal/service"

	"github.com/gin-gonic/gin"
)

type propertyRequest struct {
	Name            string `json:"name" binding:"required"`
	Address         string `json:"address"`
	IsSpringCleanup bool   `json:"is_spring_cleanup"`
	IsFallCleanup   bool   `json:"is_fall_cleanup"`
}

type propertyUpdateRequest struct {
	Name            *string `json:"name"`
	Address         *string `json:"address"`
	IsSpringCleanup *bool   `json:"is_spring_cleanup"`
	IsFallCleanup   *bool   `json:"is_fall_cleanup"`
	IsActive        *bool   `json:"is_active"`
}

func (h *Handler) ListProperties(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	properties, err := h.propertyService.List(includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	property, err := h.propertyService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) CreateProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property name is required"})
		return
	}

	property, err := h.propertyService.Create(service.PropertyInput{
		Name:            req.Name,
		Address:         req.Address,
		IsSpringCleanup: req.IsSpringCleanup,
		IsFallCleanup:   req.IsFallCleanup,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req propertyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	property, err := h.propertyService.Update(id, service.PropertyUpdate{
		Name:            req.Name,
		Address:         req.Address,
		IsSpringCleanup: req.IsSpringCleanup,
		IsFallCleanup:   req.IsFallCleanup,
		IsActive:        req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// DeleteProperty deactivates: records against the property remain.
func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.propertyService.Deactivate(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
