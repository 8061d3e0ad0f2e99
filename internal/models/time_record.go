package models

import (
	"time"
)

// TimeRecord is one recorded work session at a property, possibly
// shared by several workers. A record without an end time is an open
// (running) session; totals stay null until it is stopped.
type TimeRecord struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	PropertyID    uint      `gorm:"not null;index" json:"property_id"`
	WorkDate      time.Time `gorm:"type:date;not null;index" json:"work_date"`
	StartTime     string    `gorm:"size:8;not null" json:"start_time"`
	EndTime       *string   `gorm:"size:8" json:"end_time"`
	BreakMinutes  int       `gorm:"not null;default:0" json:"break_minutes"`
	IsManualEntry bool      `gorm:"not null;default:false" json:"is_manual_entry"`
	Notes         string    `gorm:"size:500" json:"notes"`

	// Calculated at stop/update time and stored, so later rate edits
	// never rewrite a closed session's cost.
	TotalMinutes *int     `json:"total_minutes"`
	TotalCost    *float64 `gorm:"type:numeric(10,2)" json:"total_cost"`

	Property Property `gorm:"foreignKey:PropertyID" json:"property"`
	Workers  []Worker `gorm:"many2many:time_record_workers;constraint:OnDelete:CASCADE" json:"workers"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TimeRecord) TableName() string {
	return "time_records"
}

// IsOpen reports whether the session is still running.
func (tr *TimeRecord) IsOpen() bool {
	return tr.EndTime == nil
}

// IsToday reports whether the record's work date is the current date.
func (tr *TimeRecord) IsToday() bool {
	return SameDay(tr.WorkDate, time.Now())
}

// CalculateTotals recomputes total minutes and cost from the stored
// times and the given worker set. Negative spans clamp to zero. Cost is
// additive across workers: each one bears their full rate for the whole
// span. With no end time the totals are cleared instead.
func (tr *TimeRecord) CalculateTotals(workers []Worker) error {
	if tr.EndTime == nil {
		tr.TotalMinutes = nil
		tr.TotalCost = nil
		return nil
	}

	startMinutes, err := ParseClock(tr.StartTime)
	if err != nil {
		return err
	}
	endMinutes, err := ParseClock(*tr.EndTime)
	if err != nil {
		return err
	}

	workMinutes := endMinutes - startMinutes - tr.BreakMinutes
	if workMinutes < 0 {
		workMinutes = 0
	}

	hours := float64(workMinutes) / 60
	totalCost := 0.0
	for _, worker := range workers {
		totalCost += worker.HourlyRate * hours
	}

	tr.TotalMinutes = &workMinutes
	tr.TotalCost = &totalCost
	return nil
}

// WorkerNames returns the names of the associated workers in the order
// they were loaded.
func (tr *TimeRecord) WorkerNames() []string {
	names := make([]string, 0, len(tr.Workers))
	for _, worker := range tr.Workers {
		names = append(names, worker.Name)
	}
	return names
}
