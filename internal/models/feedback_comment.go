package models

import "time"

// FeedbackComment is append-only review feedback. It is attached to the
// earliest record of the reviewed week and applies to the whole week.
type FeedbackComment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	RecordID  uint      `gorm:"not null;index" json:"record_id"`
	ManagerID uint      `gorm:"not null;index" json:"manager_id"`
	Action    string    `gorm:"type:varchar(20);not null" json:"action"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Record  DailyLogRecord `gorm:"foreignKey:RecordID" json:"-"`
	Manager Employee       `gorm:"foreignKey:ManagerID" json:"-"`
}

func (FeedbackComment) TableName() string {
	return "feedback_comments"
}

// Feedback actions
const (
	ActionApproved = "approved"
	ActionRework   = "rework"
)

// MinReworkCommentLen is the minimum comment length a rework request must
// carry. A rework without a usable explanation is rejected outright.
const MinReworkCommentLen = 10

// IsValid checks field validity. Approve comments may be empty; rework
// comments must meet the minimum length.
func (fc *FeedbackComment) IsValid() bool {
	if fc.RecordID == 0 {
		return false
	}
	if fc.ManagerID == 0 {
		return false
	}
	if fc.Action != ActionApproved && fc.Action != ActionRework {
		return false
	}
	if fc.Action == ActionRework && len(fc.Comment) < MinReworkCommentLen {
		return false
	}
	return true
}
