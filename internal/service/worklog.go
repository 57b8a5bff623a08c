package service

import (
	"fmt"
	"time"
	"worklog-service/internal/models"
	"worklog-service/internal/repository"
	"worklog-service/pkg/workweek"

	"github.com/sirupsen/logrus"
)

// WorklogService covers the employee-side record operations: upsert, delete
// and listing. Every mutation is gated by the editability policy computed
// from the week's derived status.
type WorklogService struct {
	recordRepo repository.DailyLogRepository
	aggregator *WeekAggregator
	logger     *logrus.Logger
}

func NewWorklogService(recordRepo repository.DailyLogRepository, aggregator *WeekAggregator) *WorklogService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &WorklogService{
		recordRepo: recordRepo,
		aggregator: aggregator,
		logger:     logger,
	}
}

// UpsertRecord creates or updates the employee's record for one date. New
// records always start as draft; an edit never changes the record status, so
// a rework record stays rework until the week is resubmitted.
func (s *WorklogService) UpsertRecord(employeeID uint, date time.Time, category, description string, minutes int, blockers string) (*models.DailyLogRecord, error) {
	day := workweek.Normalize(date)

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"date":        day.Format("2006-01-02"),
		"category":    category,
	}).Info("Upserting daily log record")

	if !models.ValidCategory(category) {
		return nil, &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", category)}
	}
	if minutes < models.MinMinutes || minutes > models.MaxMinutes {
		return nil, &ValidationError{Field: "minutes", Reason: fmt.Sprintf("must be between %d and %d", models.MinMinutes, models.MaxMinutes)}
	}
	if len(blockers) > models.MaxBlockersLen {
		return nil, &ValidationError{Field: "blockers", Reason: fmt.Sprintf("must be at most %d characters", models.MaxBlockersLen)}
	}

	weekStatus, err := s.weekStatusFor(employeeID, day)
	if err != nil {
		return nil, err
	}

	existing, err := s.recordRepo.GetByEmployeeAndDate(employeeID, day)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check existing record")
		return nil, err
	}

	// A forgotten day added to an approved live week reopens it: the new
	// draft record re-derives the week status on the next read. Weeks
	// locked pending review still reject new days.
	if existing == nil && weekStatus == models.StatusApproved {
		weekStatus = models.StatusDraft
	}

	if !IsEditable(day, weekStatus, time.Now()) {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"date":        day.Format("2006-01-02"),
			"week_status": weekStatus,
		}).Warn("Record date is not editable")
		return nil, ErrRecordLocked
	}

	if existing == nil {
		record := &models.DailyLogRecord{
			EmployeeID:  employeeID,
			Date:        day,
			Category:    category,
			Description: description,
			Minutes:     minutes,
			Blockers:    blockers,
			Status:      models.StatusDraft,
		}

		if err := s.recordRepo.Create(record); err != nil {
			s.logger.WithError(err).Error("Failed to create daily log record")
			return nil, err
		}

		return record, nil
	}

	// Approved days survive review cycles untouched, an edit would silently
	// rewrite signed-off history.
	if existing.Status == models.StatusApproved {
		s.logger.WithField("id", existing.ID).Warn("Attempt to edit an approved record")
		return nil, ErrRecordLocked
	}

	existing.Category = category
	existing.Description = description
	existing.Minutes = minutes
	existing.Blockers = blockers

	if err := s.recordRepo.Update(existing); err != nil {
		s.logger.WithError(err).Error("Failed to update daily log record")
		return nil, err
	}

	return existing, nil
}

// DeleteRecord removes one of the employee's own records, subject to the same
// editability gate as edits. Review transitions never delete records.
func (s *WorklogService) DeleteRecord(employeeID, recordID uint) error {
	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"record_id":   recordID,
	}).Info("Deleting daily log record")

	record, err := s.recordRepo.GetByID(recordID)
	if err != nil {
		return err
	}

	if record == nil {
		return ErrNotFound
	}

	if record.EmployeeID != employeeID {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"record_id":   recordID,
			"owner_id":    record.EmployeeID,
		}).Warn("Employee attempted to delete another employee's record")
		return ErrForbidden
	}

	weekStatus, err := s.weekStatusFor(employeeID, record.Date)
	if err != nil {
		return err
	}

	if !IsEditable(record.Date, weekStatus, time.Now()) {
		return ErrRecordLocked
	}

	if record.Status == models.StatusApproved {
		return ErrRecordLocked
	}

	return s.recordRepo.DeleteByID(recordID)
}

// ListRecords returns the employee's records for an inclusive date range.
func (s *WorklogService) ListRecords(employeeID uint, from, to time.Time) ([]models.DailyLogRecord, error) {
	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"from":        from.Format("2006-01-02"),
		"to":          to.Format("2006-01-02"),
	}).Debug("Listing daily log records")

	return s.recordRepo.ListByEmployeeAndRange(employeeID, workweek.Normalize(from), workweek.Normalize(to))
}

// WeekHistory returns the employee's own weekly submissions for a named
// reporting window, newest first.
func (s *WorklogService) WeekHistory(employeeID uint, window string, weeksBack int) ([]*models.WeekSubmission, error) {
	from, to, err := workweek.ResolveWindow(window, weeksBack, time.Now())
	if err != nil {
		return nil, &ValidationError{Field: "window", Reason: err.Error()}
	}

	return s.aggregator.WeeksInRange(employeeID, from, to)
}

func (s *WorklogService) weekStatusFor(employeeID uint, date time.Time) (string, error) {
	week, err := s.aggregator.WeekFor(employeeID, date)
	if err != nil {
		return "", err
	}
	if week == nil {
		// no records yet, a fresh week is a draft
		return models.StatusDraft, nil
	}
	return week.Status, nil
}
