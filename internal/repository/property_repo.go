package repository

import (
	"errors"
	"fmt"

	"github.com/olejniktut/dc-landscaping/internal/apperrors"
	"github.com/olejniktut/dc-landscaping/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PropertyRepository interface {
	Create(property *models.Property) error
	Update(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	GetAll(includeInactive bool) ([]models.Property, error)
	Deactivate(id uint) error
}

type GormPropertyRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormPropertyRepository(db *gorm.DB, logger *logrus.Logger) (*GormPropertyRepository, error) {
	if err := db.AutoMigrate(&models.Property{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate properties table")
		return nil, err
	}
	return &GormPropertyRepository{db: db, logger: logger}, nil
}

func (r *GormPropertyRepository) Create(property *models.Property) error {
	result := r.db.Create(property)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create property")
		return result.Error
	}
	r.logger.WithFields(logrus.Fields{
		"id":   property.ID,
		"name": property.Name,
	}).Info("Property created")
	return nil
}

func (r *GormPropertyRepository) Update(property *models.Property) error {
	result := r.db.Save(property)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update property")
		return result.Error
	}
	return nil
}

func (r *GormPropertyRepository) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	result := r.db.First(&property, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get property by ID")
		return nil, result.Error
	}

	return &property, nil
}

func (r *GormPropertyRepository) GetAll(includeInactive bool) ([]models.Property, error) {
	var properties []models.Property

	query := r.db.Order("name")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	result := query.Find(&properties)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get properties")
		return nil, result.Error
	}

	return properties, nil
}

// Deactivate flips the active flag; time records referencing the
// property are untouched.
func (r *GormPropertyRepository) Deactivate(id uint) error {
	result := r.db.Model(&models.Property{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to deactivate property")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("property %d: %w", id, apperrors.ErrNotFound)
	}

	r.logger.WithField("id", id).Info("Property deactivated")
	return nil
}
