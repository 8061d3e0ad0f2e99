package service

import (
	"fmt"
	"time"

	"github.com/olejniktut/dc-landscaping/internal/apperrors"
	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/internal/repository"

	"github.com/sirupsen/logrus"
)

// TimeRecordService orchestrates the session lifecycle: create, start,
// stop, update, delete. Role policy: workers may only mutate records
// dated today, admins are unrestricted.
type TimeRecordService struct {
	records    repository.TimeRecordRepository
	workers    repository.WorkerRepository
	properties repository.PropertyRepository
	notifier   Notifier
	logger     *logrus.Logger
}

func NewTimeRecordService(
	records repository.TimeRecordRepository,
	workers repository.WorkerRepository,
	properties repository.PropertyRepository,
	notifier Notifier,
	logger *logrus.Logger,
) *TimeRecordService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &TimeRecordService{
		records:    records,
		workers:    workers,
		properties: properties,
		notifier:   notifier,
		logger:     logger,
	}
}

// TimeRecordInput is a manual entry: both times supplied by the caller,
// end time optional.
type TimeRecordInput struct {
	PropertyID   uint
	WorkDate     time.Time
	StartTime    string
	EndTime      *string
	BreakMinutes int
	WorkerIDs    []uint
	Notes        string
}

// TimeRecordUpdate carries a partial field set; nil fields are left as
// they are.
type TimeRecordUpdate struct {
	PropertyID   *uint
	WorkDate     *time.Time
	StartTime    *string
	EndTime      *string
	BreakMinutes *int
	Notes        *string
	WorkerIDs    *[]uint
}

// TimerStop closes a running session. EndTime defaults to the current
// time; a non-empty WorkerIDs replaces the assigned worker set.
type TimerStop struct {
	RecordID     uint
	EndTime      *string
	BreakMinutes int
	WorkerIDs    []uint
}

// resolveProperty and resolveWorkers are all-or-nothing: a single
// unresolvable id fails the whole operation before anything is written.
func (s *TimeRecordService) resolveProperty(id uint) (*models.Property, error) {
	property, err := s.properties.GetByID(id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("property %d: %w", id, apperrors.ErrNotFound)
	}
	return property, nil
}

func (s *TimeRecordService) resolveWorkers(ids []uint) ([]models.Worker, error) {
	workers, err := s.workers.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(workers) != len(ids) {
		return nil, fmt.Errorf("one or more workers not found: %w", apperrors.ErrNotFound)
	}
	return workers, nil
}

func canonicalClock(value string) (string, error) {
	minutes, err := models.ParseClock(value)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}
	return models.FormatMinutes(minutes), nil
}

// Create records a manual entry. Totals are computed immediately when
// an end time is given, otherwise the session is created open.
func (s *TimeRecordService) Create(input TimeRecordInput) (*models.TimeRecord, error) {
	if input.BreakMinutes < 0 {
		return nil, fmt.Errorf("break minutes must not be negative: %w", apperrors.ErrValidation)
	}

	startTime, err := canonicalClock(input.StartTime)
	if err != nil {
		return nil, err
	}
	var endTime *string
	if input.EndTime != nil {
		canonical, err := canonicalClock(*input.EndTime)
		if err != nil {
			return nil, err
		}
		endTime = &canonical
	}

	if _, err := s.resolveProperty(input.PropertyID); err != nil {
		return nil, err
	}
	workers, err := s.resolveWorkers(input.WorkerIDs)
	if err != nil {
		return nil, err
	}

	record := &models.TimeRecord{
		PropertyID:    input.PropertyID,
		WorkDate:      models.DateOnly(input.WorkDate),
		StartTime:     startTime,
		EndTime:       endTime,
		BreakMinutes:  input.BreakMinutes,
		IsManualEntry: true,
		Notes:         input.Notes,
		Workers:       workers,
	}

	if err := record.CalculateTotals(workers); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}

	if err := s.records.Create(record); err != nil {
		return nil, err
	}
	return s.Get(record.ID)
}

// Start opens a timer-based session at the current date and time.
// Nothing prevents several concurrently open sessions for the same
// worker or property; a timer is only a recorded timestamp.
func (s *TimeRecordService) Start(propertyID uint, workerIDs []uint) (*models.TimeRecord, error) {
	property, err := s.resolveProperty(propertyID)
	if err != nil {
		return nil, err
	}
	workers, err := s.resolveWorkers(workerIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &models.TimeRecord{
		PropertyID:    propertyID,
		WorkDate:      models.DateOnly(now),
		StartTime:     models.FormatClock(now),
		IsManualEntry: false,
		Workers:       workers,
	}

	if err := s.records.Create(record); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":       record.ID,
		"property": property.Name,
	}).Info("Timer started")
	go s.notifier.TimerStarted(record, property, workers)

	return s.Get(record.ID)
}

// Stop closes a running session exactly once. The repository guards the
// transition, so a concurrent second stop fails with the invalid-state
// error instead of recomputing totals.
func (s *TimeRecordService) Stop(input TimerStop) (*models.TimeRecord, error) {
	if input.BreakMinutes < 0 {
		return nil, fmt.Errorf("break minutes must not be negative: %w", apperrors.ErrValidation)
	}

	record, err := s.records.GetByID(input.RecordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("time record %d: %w", input.RecordID, apperrors.ErrNotFound)
	}
	if !record.IsOpen() {
		return nil, fmt.Errorf("time record %d already stopped: %w", input.RecordID, apperrors.ErrInvalidState)
	}

	endTime := models.FormatClock(time.Now())
	if input.EndTime != nil {
		endTime, err = canonicalClock(*input.EndTime)
		if err != nil {
			return nil, err
		}
	}

	workers := record.Workers
	replaceWorkers := false
	if len(input.WorkerIDs) > 0 {
		workers, err = s.resolveWorkers(input.WorkerIDs)
		if err != nil {
			return nil, err
		}
		record.Workers = workers
		replaceWorkers = true
	}

	record.EndTime = &endTime
	record.BreakMinutes = input.BreakMinutes
	if err := record.CalculateTotals(workers); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}

	if err := s.records.Close(record, replaceWorkers); err != nil {
		return nil, err
	}

	go s.notifier.TimerStopped(record, &record.Property, workers)

	return s.Get(record.ID)
}

// Update applies a partial edit and recomputes totals from scratch with
// the (possibly new) worker set whenever an end time is present. The
// same-day rule applies to non-admin callers.
func (s *TimeRecordService) Update(caller *models.User, id uint, update TimeRecordUpdate) (*models.TimeRecord, error) {
	record, err := s.records.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("time record %d: %w", id, apperrors.ErrNotFound)
	}

	if !caller.IsAdmin() && !record.IsToday() {
		return nil, fmt.Errorf("workers may only edit today's records: %w", apperrors.ErrForbidden)
	}

	if update.PropertyID != nil {
		if _, err := s.resolveProperty(*update.PropertyID); err != nil {
			return nil, err
		}
		record.PropertyID = *update.PropertyID
	}
	if update.WorkDate != nil {
		record.WorkDate = models.DateOnly(*update.WorkDate)
	}
	if update.StartTime != nil {
		startTime, err := canonicalClock(*update.StartTime)
		if err != nil {
			return nil, err
		}
		record.StartTime = startTime
	}
	if update.EndTime != nil {
		endTime, err := canonicalClock(*update.EndTime)
		if err != nil {
			return nil, err
		}
		record.EndTime = &endTime
	}
	if update.BreakMinutes != nil {
		if *update.BreakMinutes < 0 {
			return nil, fmt.Errorf("break minutes must not be negative: %w", apperrors.ErrValidation)
		}
		record.BreakMinutes = *update.BreakMinutes
	}
	if update.Notes != nil {
		record.Notes = *update.Notes
	}

	replaceWorkers := false
	if update.WorkerIDs != nil {
		workers, err := s.resolveWorkers(*update.WorkerIDs)
		if err != nil {
			return nil, err
		}
		record.Workers = workers
		replaceWorkers = true
	}

	if err := record.CalculateTotals(record.Workers); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}

	if err := s.records.Save(record, replaceWorkers); err != nil {
		return nil, err
	}
	return s.Get(record.ID)
}

// Delete permanently removes a record and its worker associations,
// under the same same-day rule as Update.
func (s *TimeRecordService) Delete(caller *models.User, id uint) error {
	record, err := s.records.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("time record %d: %w", id, apperrors.ErrNotFound)
	}

	if !caller.IsAdmin() && !record.IsToday() {
		return fmt.Errorf("workers may only delete today's records: %w", apperrors.ErrForbidden)
	}

	return s.records.Delete(id)
}

func (s *TimeRecordService) Get(id uint) (*models.TimeRecord, error) {
	record, err := s.records.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("time record %d: %w", id, apperrors.ErrNotFound)
	}
	return record, nil
}

func (s *TimeRecordService) List(filter repository.RecordFilter) ([]models.TimeRecord, error) {
	return s.records.List(filter)
}

// Today lists the current date's records, open ones included.
func (s *TimeRecordService) Today() ([]models.TimeRecord, error) {
	today := models.DateOnly(time.Now())
	return s.records.List(repository.RecordFilter{StartDate: &today, EndDate: &today})
}
