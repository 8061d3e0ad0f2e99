package models

type Role string

const (
	RoleAdmin  string = "admin"
	RoleWorker string = "worker"
)

type User struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	Username       string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string `gorm:"size:100" json:"email"`
	HashedPassword string `gorm:"size:255;not null" json:"-"`
	Role           string `gorm:"size:20;not null;default:'worker'" json:"role"`
	IsActive       bool   `gorm:"not null;default:true" json:"is_active"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has full visibility and rate control.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) SetRole(role Role) {
	u.Role = string(role)
}
