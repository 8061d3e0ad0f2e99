package service

import (
	"fmt"

	"github.com/olejniktut/dc-landscaping/internal/apperrors"
	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/internal/repository"

	"github.com/sirupsen/logrus"
)

type WorkerService struct {
	workers repository.WorkerRepository
	logger  *logrus.Logger
}

func NewWorkerService(workers repository.WorkerRepository, logger *logrus.Logger) *WorkerService {
	return &WorkerService{workers: workers, logger: logger}
}

type WorkerInput struct {
	Name       string
	Phone      string
	HourlyRate *float64
}

// WorkerUpdate carries a partial field set; nil fields are untouched.
type WorkerUpdate struct {
	Name       *string
	Phone      *string
	HourlyRate *float64
	IsActive   *bool
}

func (s *WorkerService) List(includeInactive bool) ([]models.Worker, error) {
	return s.workers.GetAll(includeInactive)
}

func (s *WorkerService) Get(id uint) (*models.Worker, error) {
	worker, err := s.workers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, fmt.Errorf("worker %d: %w", id, apperrors.ErrNotFound)
	}
	return worker, nil
}

// Create adds a worker. Only admins control the hourly rate; anyone
// else gets the default regardless of what they sent.
func (s *WorkerService) Create(caller *models.User, input WorkerInput) (*models.Worker, error) {
	rate := models.DefaultHourlyRate
	if caller.IsAdmin() && input.HourlyRate != nil {
		rate = *input.HourlyRate
	}

	worker := &models.Worker{
		Name:       input.Name,
		Phone:      input.Phone,
		HourlyRate: rate,
		IsActive:   true,
	}
	if !worker.IsValid() {
		return nil, fmt.Errorf("invalid worker data: %w", apperrors.ErrValidation)
	}

	if err := s.workers.Create(worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// Update applies a per-role allow-list to the incoming fields: the
// hourly rate is dropped unless the caller is an admin.
func (s *WorkerService) Update(caller *models.User, id uint, update WorkerUpdate) (*models.Worker, error) {
	worker, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
		update.HourlyRate = nil
	}

	if update.Name != nil {
		worker.Name = *update.Name
	}
	if update.Phone != nil {
		worker.Phone = *update.Phone
	}
	if update.HourlyRate != nil {
		worker.HourlyRate = *update.HourlyRate
	}
	if update.IsActive != nil {
		worker.IsActive = *update.IsActive
	}

	if !worker.IsValid() {
		return nil, fmt.Errorf("invalid worker data: %w", apperrors.ErrValidation)
	}

	if err := s.workers.Update(worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// Deactivate is the normal "delete" path: a logical flag flip that
// keeps every historical time record association.
func (s *WorkerService) Deactivate(caller *models.User, id uint) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("only admins may remove workers: %w", apperrors.ErrForbidden)
	}
	return s.workers.Deactivate(id)
}

// HardDelete permanently removes the worker and cascades association
// rows. Distinct from Deactivate by contract.
func (s *WorkerService) HardDelete(caller *models.User, id uint) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("only admins may remove workers: %w", apperrors.ErrForbidden)
	}
	return s.workers.HardDelete(id)
}
