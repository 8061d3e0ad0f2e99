package repository

import (
	"errors"
	"fmt"

	"github.com/olejniktut/dc-landscaping/internal/apperrors"
	"github.com/olejniktut/dc-landscaping/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type WorkerRepository interface {
	Create(worker *models.Worker) error
	Update(worker *models.Worker) error
	GetByID(id uint) (*models.Worker, error)
	GetByIDs(ids []uint) ([]models.Worker, error)
	GetAll(includeInactive bool) ([]models.Worker, error)
	Deactivate(id uint) error
	HardDelete(id uint) error
	CountActive() (int64, error)
}

type GormWorkerRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormWorkerRepository(db *gorm.DB, logger *logrus.Logger) (*GormWorkerRepository, error) {
	if err := db.AutoMigrate(&models.Worker{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate workers table")
		return nil, err
	}
	return &GormWorkerRepository{db: db, logger: logger}, nil
}

func (r *GormWorkerRepository) Create(worker *models.Worker) error {
	result := r.db.Create(worker)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create worker")
		return result.Error
	}
	r.logger.WithFields(logrus.Fields{
		"id":   worker.ID,
		"name": worker.Name,
	}).Info("Worker created")
	return nil
}

func (r *GormWorkerRepository) Update(worker *models.Worker) error {
	result := r.db.Save(worker)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update worker")
		return result.Error
	}
	return nil
}

func (r *GormWorkerRepository) GetByID(id uint) (*models.Worker, error) {
	var worker models.Worker
	result := r.db.First(&worker, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get worker by ID")
		return nil, result.Error
	}

	return &worker, nil
}

func (r *GormWorkerRepository) GetByIDs(ids []uint) ([]models.Worker, error) {
	var workers []models.Worker
	if len(ids) == 0 {
		return workers, nil
	}

	result := r.db.Where("id IN ?", ids).Find(&workers)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get workers by IDs")
		return nil, result.Error
	}

	return workers, nil
}

func (r *GormWorkerRepository) GetAll(includeInactive bool) ([]models.Worker, error) {
	var workers []models.Worker

	query := r.db.Order("name")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	result := query.Find(&workers)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get workers")
		return nil, result.Error
	}

	return workers, nil
}

// Deactivate flips the active flag. Historical time record associations
// are kept; only HardDelete removes them.
func (r *GormWorkerRepository) Deactivate(id uint) error {
	result := r.db.Model(&models.Worker{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to deactivate worker")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("worker %d: %w", id, apperrors.ErrNotFound)
	}

	r.logger.WithField("id", id).Info("Worker deactivated")
	return nil
}

// HardDelete permanently removes the worker and cascades its time
// record association rows.
func (r *GormWorkerRepository) HardDelete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		worker := models.Worker{ID: id}
		if err := tx.Model(&worker).Association("TimeRecords").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&models.Worker{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("worker %d: %w", id, apperrors.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("id", id).Error("Failed to hard-delete worker")
		return err
	}

	r.logger.WithField("id", id).Info("Worker hard-deleted")
	return nil
}

func (r *GormWorkerRepository) CountActive() (int64, error) {
	var count int64
	result := r.db.Model(&models.Worker{}).Where("is_active = ?", true).Count(&count)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to count active workers")
		return 0, result.Error
	}
	return count, nil
}
