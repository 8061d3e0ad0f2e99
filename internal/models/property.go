package models

type Property struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"size:100;not null" json:"name"`
	Address         string `gorm:"size:255" json:"address"`
	IsSpringCleanup bool   `gorm:"not null;default:false" json:"is_spring_cleanup"`
	IsFallCleanup   bool   `gorm:"not null;default:false" json:"is_fall_cleanup"`
	IsActive        bool   `gorm:"not null;default:true" json:"is_active"`

	TimeRecords []TimeRecord `gorm:"foreignKey:PropertyID" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}

// CleanupLabel returns the reporting label for the property's cleanup
// classification. Spring takes precedence when both flags are set.
func (p *Property) CleanupLabel() string {
	if p.IsSpringCleanup {
		return "Spring"
	}
	if p.IsFallCleanup {
		return "Fall"
	}
	return ""
}

// MatchesCleanupType reports whether the property passes the given
// report filter ("spring", "fall" or "" for no filter).
func (p *Property) MatchesCleanupType(cleanupType string) bool {
	switch cleanupType {
	case CleanupSpring:
		return p.IsSpringCleanup
	case CleanupFall:
		return p.IsFallCleanup
	default:
		return true
	}
}

const (
	CleanupSpring = "spring"
	CleanupFall   = "fall"
)
