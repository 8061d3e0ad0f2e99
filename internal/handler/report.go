package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/olejniktut/dc-landscaping/internal/export"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.Dashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// reportQuery parses the shared report filter: required start/end
// dates, optional property and cleanup type.
func reportQuery(c *gin.Context) (startDate, endDate time.Time, propertyID *uint, cleanupType string, ok bool) {
	var err error
	startDate, err = parseDate(c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	endDate, err = parseDate(c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	if value := c.Query("property_id"); value != "" {
		id, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property_id"})
			return
		}
		parsed := uint(id)
		propertyID = &parsed
	}
	cleanupType = c.Query("cleanup_type")
	ok = true
	return
}

func (h *Handler) ReportSummary(c *gin.Context) {
	startDate, endDate, propertyID, cleanupType, ok := reportQuery(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(startDate, endDate, propertyID, cleanupType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ReportPreview(c *gin.Context) {
	startDate, endDate, propertyID, cleanupType, ok := reportQuery(c)
	if !ok {
		return
	}

	preview, err := h.reportService.Preview(startDate, endDate, propertyID, cleanupType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *Handler) ReportExport(c *gin.Context) {
	startDate, endDate, propertyID, cleanupType, ok := reportQuery(c)
	if !ok {
		return
	}

	data, err := h.reportService.Export(startDate, endDate, propertyID, cleanupType)
	if err != nil {
		respondError(c, err)
		return
	}

	workbook, err := export.ReportWorkbook(data)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if _, err := workbook.WriteTo(&buf); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("dc_landscaping_report_%s_%s.xlsx",
		data.StartDate.Format("2006-01-02"), data.EndDate.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
