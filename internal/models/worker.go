package models

// DefaultHourlyRate is applied when a worker is created without an
// explicit rate, or when a non-admin creates one.
const DefaultHourlyRate = 20.00

type Worker struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	Name       string  `gorm:"size:50;not null" json:"name"`
	Phone      string  `gorm:"size:20" json:"phone"`
	HourlyRate float64 `gorm:"type:numeric(10,2);not null;default:20" json:"hourly_rate"`
	IsActive   bool    `gorm:"not null;default:true" json:"is_active"`

	TimeRecords []TimeRecord `gorm:"many2many:time_record_workers" json:"-"`
}

func (Worker) TableName() string {
	return "workers"
}

// IsValid checks the worker fields before persisting.
func (w *Worker) IsValid() bool {
	if w.Name == "" {
		return false
	}
	if w.HourlyRate < 0 {
		return false
	}
	return true
}
