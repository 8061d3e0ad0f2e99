package service

import (
	"fmt"

	"github.com/olejniktut/dc-landscaping/internal/apperrors"
	"github.com/olejniktut/dc-landscaping/internal/models"
	"github.com/olejniktut/dc-landscaping/internal/repository"

	"github.com/sirupsen/logrus"
)

type PropertyService struct {
	properties repository.PropertyRepository
	logger     *logrus.Logger
}

func NewPropertyService(properties repository.PropertyRepository, logger *logrus.Logger) *PropertyService {
	return &PropertyService{properties: properties, logger: logger}
}

type PropertyInput struct {
	Name            string
	Address         string
	IsSpringCleanup bool
	IsFallCleanup   bool
}

type PropertyUpdate struct {
	Name            *string
	Address         *string
	IsSpringCleanup *bool
	IsFallCleanup   *bool
	IsActive        *bool
}

func (s *PropertyService) List(includeInactive bool) ([]models.Property, error) {
	return s.properties.GetAll(includeInactive)
}

func (s *PropertyService) Get(id uint) (*models.Property, error) {
	property, err := s.properties.GetByID(id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("property %d: %w", id, apperrors.ErrNotFound)
	}
	return property, nil
}

func (s *PropertyService) Create(input PropertyInput) (*models.Property, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("property name is required: %w", apperrors.ErrValidation)
	}

	property := &models.Property{
		Name:            input.Name,
		Address:         input.Address,
		IsSpringCleanup: input.IsSpringCleanup,
		IsFallCleanup:   input.IsFallCleanup,
		IsActive:        true,
	}

	if err := s.properties.Create(property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) Update(id uint, update PropertyUpdate) (*models.Property, error) {
	property, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		property.Name = *update.Name
	}
	if update.Address != nil {
		property.Address = *update.Address
	}
	if update.IsSpringCleanup != nil {
		property.IsSpringCleanup = *update.IsSpringCleanup
	}
	if update.IsFallCleanup != nil {
		property.IsFallCleanup = *update.IsFallCleanup
	}
	if update.IsActive != nil {
		property.IsActive = *update.IsActive
	}

	if property.Name == "" {
		return nil, fmt.Errorf("property name is required: %w", apperrors.ErrValidation)
	}

	if err := s.properties.Update(property); err != nil {
		return nil, err
	}
	return property, nil
}

// Deactivate flips the active flag; time records against the property
// remain queryable for reports.
func (s *PropertyService) Deactivate(id uint) error {
	return s.properties.Deactivate(id)
}
