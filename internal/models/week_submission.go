package models

import "time"

// WeekSubmission is the per-employee Monday-Sunday aggregate of daily log
// records. It is never persisted: status, totals and counts are recomputed
// from the contained records on every read, so week-level and record-level
// state cannot drift apart.
type WeekSubmission struct {
	EmployeeID uint      `json:"employee_id"`
	WeekStart  time.Time `json:"week_start"`
	WeekEnd    time.Time `json:"week_end"`

	Records []DailyLogRecord `json:"records"`

	Status         string         `json:"status"`
	TotalMinutes   int            `json:"total_minutes"`
	DaysLogged     int            `json:"days_logged"`
	CategoryCounts map[string]int `json:"category_counts"`

	// SubmittedAt is the latest submission timestamp among the records,
	// nil while the week has never been submitted.
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// DeriveWeekStatus computes the week status from its records.
// Precedence: rework > submitted > approved > draft. A single rework day must
// keep the whole week flagged, and a week only reads approved when every
// record is approved.
func DeriveWeekStatus(records []DailyLogRecord) string {
	if len(records) == 0 {
		return StatusDraft
	}

	hasSubmitted := false
	allApproved := true
	for _, r := range records {
		switch r.Status {
		case StatusRework:
			return StatusRework
		case StatusSubmitted:
			hasSubmitted = true
		}
		if r.Status != StatusApproved {
			allApproved = false
		}
	}

	if hasSubmitted {
		return StatusSubmitted
	}
	if allApproved {
		return StatusApproved
	}
	return StatusDraft
}

// NewWeekSubmission builds the aggregate for one employee and week window.
func NewWeekSubmission(employeeID uint, weekStart, weekEnd time.Time, records []DailyLogRecord) *WeekSubmission {
	ws := &WeekSubmission{
		EmployeeID:     employeeID,
		WeekStart:      weekStart,
		WeekEnd:        weekEnd,
		Records:        records,
		Status:         DeriveWeekStatus(records),
		CategoryCounts: make(map[string]int),
	}

	days := make(map[string]bool)
	for _, r := range records {
		ws.TotalMinutes += r.Minutes
		ws.CategoryCounts[r.Category]++
		days[r.DayKey()] = true

		if r.SubmittedAt != nil {
			if ws.SubmittedAt == nil || r.SubmittedAt.After(*ws.SubmittedAt) {
				t := *r.SubmittedAt
				ws.SubmittedAt = &t
			}
		}
	}
	ws.DaysLogged = len(days)

	return ws
}

// EarliestRecord returns the record with the smallest date, or nil for an
// empty week. Feedback comments attach to it.
func (ws *WeekSubmission) EarliestRecord() *DailyLogRecord {
	var earliest *DailyLogRecord
	for i := range ws.Records {
		if earliest == nil || ws.Records[i].Date.Before(earliest.Date) {
			earliest = &ws.Records[i]
		}
	}
	return earliest
}

// RecordIDs returns the ids of all contained records.
func (ws *WeekSubmission) RecordIDs() []uint {
	ids := make([]uint, 0, len(ws.Records))
	for _, r := range ws.Records {
		ids = append(ids, r.ID)
	}
	return ids
}
