package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/olejniktut/dc-landscaping/internal/apperrors"
	"github.com/olejniktut/dc-landscaping/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecordFilter narrows time record queries. Nil fields are ignored;
// dates are inclusive on both ends.
type RecordFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	PropertyID *uint
	WorkerID   *uint
	ClosedOnly bool
}

type TimeRecordRepository interface {
	Create(record *models.TimeRecord) error
	GetByID(id uint) (*models.TimeRecord, error)
	List(filter RecordFilter) ([]models.TimeRecord, error)
	Save(record *models.TimeRecord, replaceWorkers bool) error
	Close(record *models.TimeRecord, replaceWorkers bool) error
	Delete(id uint) error
}

type GormTimeRecordRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormTimeRecordRepository(db *gorm.DB, logger *logrus.Logger) (*GormTimeRecordRepository, error) {
	if err := db.AutoMigrate(&models.TimeRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate time_records table")
		return nil, err
	}
	return &GormTimeRecordRepository{db: db, logger: logger}, nil
}

// Create persists the record together with its worker association rows.
// record.Workers must hold already-persisted workers; their own rows are
// not touched.
func (r *GormTimeRecordRepository) Create(record *models.TimeRecord) error {
	result := r.db.Omit("Workers.*").Create(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create time record")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":          record.ID,
		"property_id": record.PropertyID,
		"work_date":   record.WorkDate.Format("2006-01-02"),
		"manual":      record.IsManualEntry,
	}).Info("Time record created")
	return nil
}

func (r *GormTimeRecordRepository) GetByID(id uint) (*models.TimeRecord, error) {
	var record models.TimeRecord
	result := r.db.Preload("Workers").Preload("Property").First(&record, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get time record by ID")
		return nil, result.Error
	}

	return &record, nil
}

func (r *GormTimeRecordRepository) List(filter RecordFilter) ([]models.TimeRecord, error) {
	var records []models.TimeRecord

	query := r.db.Model(&models.TimeRecord{}).
		Preload("Workers").
		Preload("Property").
		Order("work_date DESC, start_time DESC")

	if filter.StartDate != nil {
		query = query.Where("work_date >= ?", models.DateOnly(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("work_date <= ?", models.DateOnly(*filter.EndDate))
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.WorkerID != nil {
		query = query.
			Joins("JOIN time_record_workers trw ON trw.time_record_id = time_records.id").
			Where("trw.worker_id = ?", *filter.WorkerID)
	}
	if filter.ClosedOnly {
		query = query.Where("total_minutes IS NOT NULL")
	}

	result := query.Find(&records)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list time records")
		return nil, result.Error
	}

	return records, nil
}

// Save writes the record fields and, when replaceWorkers is set, swaps
// the association rows for record.Workers in the same transaction.
func (r *GormTimeRecordRepository) Save(record *models.TimeRecord, replaceWorkers bool) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Workers", "Property").Save(record).Error; err != nil {
			return err
		}
		if replaceWorkers {
			if err := tx.Model(record).Association("Workers").Replace(record.Workers); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("id", record.ID).Error("Failed to save time record")
		return err
	}

	r.logger.WithField("id", record.ID).Info("Time record updated")
	return nil
}

// Close performs the OPEN -> CLOSED transition. The update is guarded
// on end_time still being null, so of two concurrent stops exactly one
// wins and the other reports the invalid state.
func (r *GormTimeRecordRepository) Close(record *models.TimeRecord, replaceWorkers bool) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.TimeRecord{}).
			Where("id = ? AND end_time IS NULL", record.ID).
			Updates(map[string]interface{}{
				"end_time":      record.EndTime,
				"break_minutes": record.BreakMinutes,
				"total_minutes": record.TotalMinutes,
				"total_cost":    record.TotalCost,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("time record %d already stopped: %w", record.ID, apperrors.ErrInvalidState)
		}

		if replaceWorkers {
			if err := tx.Model(record).Association("Workers").Replace(record.Workers); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidState) {
			r.logger.WithError(err).WithField("id", record.ID).Error("Failed to close time record")
		}
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":            record.ID,
		"total_minutes": record.TotalMinutes,
		"total_cost":    record.TotalCost,
	}).Info("Time record closed")
	return nil
}

// Delete permanently removes the record and cascades its worker
// association rows.
func (r *GormTimeRecordRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		record := models.TimeRecord{ID: id}
		if err := tx.Model(&record).Association("Workers").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&models.TimeRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("time record %d: %w", id, apperrors.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			r.logger.WithError(err).WithField("id", id).Error("Failed to delete time record")
		}
		return err
	}

	r.logger.WithField("id", id).Info("Time record deleted")
	return nil
}
