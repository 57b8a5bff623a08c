package service

import (
	"time"
	"worklog-service/internal/models"
	"worklog-service/pkg/workweek"
)

// IsEditable decides whether a daily record may be created, edited or
// deleted. It is a pure function of the record date, the week's derived
// status and today's date, so it can never disagree with the state machine.
//
// Rules, in order:
//  1. a submitted or approved week is locked
//  2. future dates cannot be logged
//  3. only the live week (the Monday-Sunday window containing today) is
//     editable, past weeks are read-only history
//  4. otherwise the record is editable (week is draft or rework)
func IsEditable(recordDate time.Time, weekStatus string, today time.Time) bool {
	if weekStatus == models.StatusSubmitted || weekStatus == models.StatusApproved {
		return false
	}

	day := workweek.Normalize(recordDate)
	now := workweek.Normalize(today)

	if day.After(now) {
		return false
	}

	if !workweek.Contains(workweek.WeekStart(now), day) {
		return false
	}

	return true
}
