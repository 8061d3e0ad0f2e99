package service

import (
	"fmt"
	"math"
	"time"

	"github.com/olejniktut/dc-landscaping/internal/apperrors"
	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/internal/repository"

	"github.com/sirupsen/logrus"
)

// ReportService rolls closed time records into dashboard, summary,
// preview and export views. Open sessions never participate. Values are
// accumulated unrounded and rounded to two decimals only at this
// reporting boundary, so repeated aggregation is deterministic.
type ReportService struct {
	records    repository.TimeRecordRepository
	workers    repository.WorkerRepository
	properties repository.PropertyRepository
	logger     *logrus.Logger
}

func NewReportService(
	records repository.TimeRecordRepository,
	workers repository.WorkerRepository,
	properties repository.PropertyRepository,
	logger *logrus.Logger,
) *ReportService {
	return &ReportService{
		records:    records,
		workers:    workers,
		properties: properties,
		logger:     logger,
	}
}

type DashboardStats struct {
	TodayHours    float64 `json:"today_hours"`
	TodayCost     float64 `json:"today_cost"`
	TodayRecords  int     `json:"today_records"`
	ActiveWorkers int     `json:"active_workers"`
	MonthHours    float64 `json:"month_hours"`
	MonthCost     float64 `json:"month_cost"`
	YearHours     float64 `json:"year_hours"`
	YearCost      float64 `json:"year_cost"`
}

type ReportSummary struct {
	TotalHours      float64 `json:"total_hours"`
	TotalCost       float64 `json:"total_cost"`
	RecordsCount    int     `json:"records_count"`
	PropertiesCount int     `json:"properties_count"`
}

type ReportRow struct {
	ID       uint     `json:"id"`
	Date     string   `json:"date"`
	Property string   `json:"property"`
	Type     string   `json:"type"`
	Workers  []string `json:"workers"`
	Hours    float64  `json:"hours"`
	Cost     float64  `json:"cost"`
}

type ReportPreview struct {
	Records    []ReportRow `json:"records"`
	TotalHours float64     `json:"total_hours"`
	TotalCost  float64     `json:"total_cost"`
}

// ReportExport is the row set handed to the spreadsheet renderer.
type ReportExport struct {
	Rows       []ReportRow
	StartDate  time.Time
	EndDate    time.Time
	ScopeLabel string
	TotalHours float64
	TotalCost  float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validateCleanupType(cleanupType string) error {
	switch cleanupType {
	case "", models.CleanupSpring, models.CleanupFall:
		return nil
	default:
		return fmt.Errorf("unknown cleanup type %q: %w", cleanupType, apperrors.ErrValidation)
	}
}

// rangeRecords queries closed records in the date range, then applies
// the cleanup-type predicate over the joined property classification.
// The cleanup filter is deliberately not pushed into the query.
func (s *ReportService) rangeRecords(startDate, endDate time.Time, propertyID *uint, cleanupType string) ([]models.TimeRecord, error) {
	records, err := s.records.List(repository.RecordFilter{
		StartDate:  &startDate,
		EndDate:    &endDate,
		PropertyID: propertyID,
		ClosedOnly: true,
	})
	if err != nil {
		return nil, err
	}

	if cleanupType == "" {
		return records, nil
	}

	filtered := records[:0]
	for _, record := range records {
		if record.Property.MatchesCleanupType(cleanupType) {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

func sumRecords(records []models.TimeRecord) (hours, cost float64) {
	for _, record := range records {
		if record.TotalMinutes != nil {
			hours += float64(*record.TotalMinutes) / 60
		}
		if record.TotalCost != nil {
			cost += *record.TotalCost
		}
	}
	return hours, cost
}

// Dashboard aggregates today, the current month and the current year,
// plus the active worker head count.
func (s *ReportService) Dashboard() (*DashboardStats, error) {
	today := models.DateOnly(time.Now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	todayRecords, err := s.rangeRecords(today, today, nil, "")
	if err != nil {
		return nil, err
	}
	monthRecords, err := s.rangeRecords(monthStart, today, nil, "")
	if err != nil {
		return nil, err
	}
	yearRecords, err := s.rangeRecords(yearStart, today, nil, "")
	if err != nil {
		return nil, err
	}

	activeWorkers, err := s.workers.CountActive()
	if err != nil {
		return nil, err
	}

	todayHours, todayCost := sumRecords(todayRecords)
	monthHours, monthCost := sumRecords(monthRecords)
	yearHours, yearCost := sumRecords(yearRecords)

	return &DashboardStats{
		TodayHours:    round2(todayHours),
		TodayCost:     round2(todayCost),
		TodayRecords:  len(todayRecords),
		ActiveWorkers: int(activeWorkers),
		MonthHours:    round2(monthHours),
		MonthCost:     round2(monthCost),
		YearHours:     round2(yearHours),
		YearCost:      round2(yearCost),
	}, nil
}

// Summary totals a date range, optionally scoped to a property and/or
// cleanup type, including the distinct property count.
func (s *ReportService) Summary(startDate, endDate time.Time, propertyID *uint, cleanupType string) (*ReportSummary, error) {
	if err := validateCleanupType(cleanupType); err != nil {
		return nil, err
	}

	records, err := s.rangeRecords(startDate, endDate, propertyID, cleanupType)
	if err != nil {
		return nil, err
	}

	hours, cost := sumRecords(records)

	properties := make(map[uint]struct{})
	for _, record := range records {
		properties[record.PropertyID] = struct{}{}
	}

	return &ReportSummary{
		TotalHours:      round2(hours),
		TotalCost:       round2(cost),
		RecordsCount:    len(records),
		PropertiesCount: len(properties),
	}, nil
}

func buildRows(records []models.TimeRecord) ([]ReportRow, float64, float64) {
	rows := make([]ReportRow, 0, len(records))
	var totalHours, totalCost float64

	for _, record := range records {
		hours := 0.0
		if record.TotalMinutes != nil {
			hours = float64(*record.TotalMinutes) / 60
		}
		cost := 0.0
		if record.TotalCost != nil {
			cost = *record.TotalCost
		}
		totalHours += hours
		totalCost += cost

		rows = append(rows, ReportRow{
			ID:       record.ID,
			Date:     record.WorkDate.Format("2006-01-02"),
			Property: record.Property.Name,
			Type:     record.Property.CleanupLabel(),
			Workers:  record.WorkerNames(),
			Hours:    round2(hours),
			Cost:     round2(cost),
		})
	}

	return rows, totalHours, totalCost
}

// Preview returns one row per record, date descending, with running
// totals.
func (s *ReportService) Preview(startDate, endDate time.Time, propertyID *uint, cleanupType string) (*ReportPreview, error) {
	if err := validateCleanupType(cleanupType); err != nil {
		return nil, err
	}

	records, err := s.rangeRecords(startDate, endDate, propertyID, cleanupType)
	if err != nil {
		return nil, err
	}

	rows, totalHours, totalCost := buildRows(records)
	return &ReportPreview{
		Records:    rows,
		TotalHours: round2(totalHours),
		TotalCost:  round2(totalCost),
	}, nil
}

// Export produces the same ordered row set as Preview, annotated with a
// human-readable scope label for the spreadsheet renderer.
func (s *ReportService) Export(startDate, endDate time.Time, propertyID *uint, cleanupType string) (*ReportExport, error) {
	if err := validateCleanupType(cleanupType); err != nil {
		return nil, err
	}

	scopeLabel := "All Properties"
	if propertyID != nil {
		property, err := s.properties.GetByID(*propertyID)
		if err != nil {
			return nil, err
		}
		if property != nil {
			scopeLabel = property.Name
		}
	}
	switch cleanupType {
	case models.CleanupSpring:
		scopeLabel += " (Spring Cleanup)"
	case models.CleanupFall:
		scopeLabel += " (Fall Cleanup)"
	}

	records, err := s.rangeRecords(startDate, endDate, propertyID, cleanupType)
	if err != nil {
		return nil, err
	}

	rows, totalHours, totalCost := buildRows(records)

	s.logger.WithFields(logrus.Fields{
		"start": startDate.Format("2006-01-02"),
		"end":   endDate.Format("2006-01-02"),
		"scope": scopeLabel,
		"rows":  len(rows),
	}).Info("Report export built")

	return &ReportExport{
		Rows:       rows,
		StartDate:  models.DateOnly(startDate),
		EndDate:    models.DateOnly(endDate),
		ScopeLabel: scopeLabel,
		TotalHours: round2(totalHours),
		TotalCost:  round2(totalCost),
	}, nil
}
