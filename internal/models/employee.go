package models

import "time"

type Role string

const (
	RoleEmployee string = "employee"
	RoleManager  string = "manager"
	RoleAdmin    string = "admin"
)

type Employee struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName       string    `gorm:"not null" json:"full_name"`
	Role           string    `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	ManagerID      *uint     `gorm:"index" json:"manager_id"`
	TelegramChatID *int64    `gorm:"uniqueIndex" json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Manager *Employee `gorm:"foreignKey:ManagerID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// IsManager reports whether the employee may review submissions.
func (e *Employee) IsManager() bool {
	return e.Role == RoleManager || e.Role == RoleAdmin
}

// IsAdmin reports whether the employee has organization-wide scope.
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

// SetRole sets the role.
func (e *Employee) SetRole(role Role) {
	e.Role = string(role)
}

// IsValid checks field validity.
func (e *Employee) IsValid() bool {
	if e.Email == "" {
		return false
	}
	if e.FullName == "" {
		return false
	}
	if e.Role != RoleEmployee && e.Role != RoleManager && e.Role != RoleAdmin {
		return false
	}
	return true
}
