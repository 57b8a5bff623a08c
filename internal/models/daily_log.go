package models

import "time"

type DailyLogRecord struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_employee_date;index" json:"employee_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_employee_date;index" json:"date"`

	Category    string `gorm:"type:varchar(20);not null" json:"category"`
	Description string `gorm:"type:text;not null" json:"description"`
	Minutes     int    `gorm:"not null" json:"minutes"`
	Blockers    string `gorm:"type:text" json:"blockers,omitempty"`

	// Status moves draft -> submitted -> (approved | rework) -> submitted.
	// Only manager transitions produce approved/rework.
	Status      string     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (DailyLogRecord) TableName() string {
	return "daily_log_records"
}

// Record statuses
const (
	StatusDraft     = "draft"     // editable by the owner
	StatusSubmitted = "submitted" // locked, awaiting review
	StatusApproved  = "approved"  // review accepted
	StatusRework    = "rework"    // review rejected, editable again
)

// Work categories
const (
	CategoryTask     = "task"
	CategoryMeeting  = "meeting"
	CategorySupport  = "support"
	CategoryLearning = "learning"
	CategoryOther    = "other"
)

// Field limits
const (
	MinMinutes        = 1
	MaxMinutes        = 960
	MinDescriptionLen = 20
	MaxDescriptionLen = 1000
	MaxBlockersLen    = 500
)

// ValidCategory reports whether s is one of the known work categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryTask, CategoryMeeting, CategorySupport, CategoryLearning, CategoryOther:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known record statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRework:
		return true
	}
	return false
}

// DayKey returns the record date normalized to a map key.
func (r *DailyLogRecord) DayKey() string {
	return r.Date.Format("2006-01-02")
}

// IsValid checks field validity. Description length is enforced at the HTTP
// boundary, not here.
func (r *DailyLogRecord) IsValid() bool {
	if r.EmployeeID == 0 {
		return false
	}
	if r.Date.IsZero() {
		return false
	}
	if !ValidCategory(r.Category) {
		return false
	}
	if r.Minutes < MinMinutes || r.Minutes > MaxMinutes {
		return false
	}
	if len(r.Blockers) > MaxBlockersLen {
		return false
	}
	if !ValidStatus(r.Status) {
		return false
	}
	return true
}
