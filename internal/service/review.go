package service

import (
	"fmt"
	"time"
	"worklog-service/internal/models"
	"worklog-service/internal/notify"
	"worklog-service/internal/repository"
	"worklog-service/pkg/workweek"

	"github.com/sirupsen/logrus"
)

// ReviewService drives the week lifecycle: submit -> review -> (approve |
// rework) -> resubmit. All status changes go through batch transitions on the
// record repository, so a week can never be left half-moved, and the derived
// week status stays a pure function of its records.
//
// There is no explicit reopen: adding a new draft record to an approved
// current week re-derives the status on the next read.
type ReviewService struct {
	recordRepo   repository.DailyLogRepository
	feedbackRepo repository.FeedbackRepository
	employeeRepo *repository.EmployeeRepository
	aggregator   *WeekAggregator
	notifier     notify.Notifier
	logger       *logrus.Logger
}

func NewReviewService(
	recordRepo repository.DailyLogRepository,
	feedbackRepo repository.FeedbackRepository,
	employeeRepo *repository.EmployeeRepository,
	aggregator *WeekAggregator,
	notifier notify.Notifier,
) *ReviewService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if notifier == nil {
		notifier = notify.NopNotifier{}
	}

	return &ReviewService{
		recordRepo:   recordRepo,
		feedbackRepo: feedbackRepo,
		employeeRepo: employeeRepo,
		aggregator:   aggregator,
		notifier:     notifier,
		logger:       logger,
	}
}

// SubmitWeek moves every draft and rework record of the week to submitted and
// stamps their submission time. Approved records stay untouched, so after a
// rework cycle only the disputed days are resubmitted.
func (s *ReviewService) SubmitWeek(employeeID uint, weekStart time.Time) (*models.WeekSubmission, error) {
	start := workweek.WeekStart(weekStart)

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"week_start":  start.Format("2006-01-02"),
	}).Info("Submitting week")

	week, err := s.aggregator.WeekFor(employeeID, start)
	if err != nil {
		return nil, err
	}
	if week == nil {
		return nil, ErrNotFound
	}

	if week.Status != models.StatusDraft && week.Status != models.StatusRework {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"week_status": week.Status,
		}).Warn("Submit rejected for week status")
		return nil, &TransitionError{Action: "submit", WeekStatus: week.Status}
	}

	now := time.Now()
	_, err = s.recordRepo.TransitionWeek(
		employeeID, start, week.WeekEnd,
		[]string{models.StatusDraft, models.StatusRework},
		models.StatusSubmitted, &now, nil)
	if err != nil {
		s.logger.WithError(err).Error("Failed to submit week")
		return nil, err
	}

	submitted, err := s.aggregator.WeekFor(employeeID, start)
	if err != nil {
		return nil, err
	}

	go s.notifyManager(employeeID, submitted)

	s.logger.WithFields(logrus.Fields{
		"employee_id":   employeeID,
		"week_start":    start.Format("2006-01-02"),
		"total_minutes": submitted.TotalMinutes,
		"days_logged":   submitted.DaysLogged,
	}).Info("Week submitted successfully")

	return submitted, nil
}

// ApproveWeek moves every submitted record of the week to approved and
// appends one approval comment (text optional). The week must currently
// derive as submitted.
func (s *ReviewService) ApproveWeek(employeeID uint, weekStart time.Time, managerID uint, comment string) (*models.WeekSubmission, error) {
	return s.review(employeeID, weekStart, managerID, models.ActionApproved, comment)
}

// RequestRework moves every submitted record of the week back to rework. The
// explanatory comment is mandatory and checked before any state changes: a
// vague rework request is a correctness defect, not a UX nicety.
func (s *ReviewService) RequestRework(employeeID uint, weekStart time.Time, managerID uint, comment string) (*models.WeekSubmission, error) {
	if len(comment) < models.MinReworkCommentLen {
		return nil, &ValidationError{
			Field:  "comment",
			Reason: fmt.Sprintf("rework comment must be at least %d characters", models.MinReworkCommentLen),
		}
	}

	return s.review(employeeID, weekStart, managerID, models.ActionRework, comment)
}

// ListComments returns the feedback history for the employee's week, newest
// first.
func (s *ReviewService) ListComments(employeeID uint, weekStart time.Time) ([]models.FeedbackComment, error) {
	week, err := s.aggregator.WeekFor(employeeID, workweek.WeekStart(weekStart))
	if err != nil {
		return nil, err
	}
	if week == nil {
		return nil, ErrNotFound
	}

	return s.feedbackRepo.ListByRecordIDs(week.RecordIDs())
}

func (s *ReviewService) review(employeeID uint, weekStart time.Time, managerID uint, action, comment string) (*models.WeekSubmission, error) {
	start := workweek.WeekStart(weekStart)

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"week_start":  start.Format("2006-01-02"),
		"manager_id":  managerID,
		"action":      action,
	}).Info("Reviewing week")

	manager, employee, err := s.checkReviewer(managerID, employeeID)
	if err != nil {
		return nil, err
	}

	week, err := s.aggregator.WeekFor(employeeID, start)
	if err != nil {
		return nil, err
	}
	if week == nil {
		return nil, ErrNotFound
	}

	if week.Status != models.StatusSubmitted {
		s.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"week_status": week.Status,
			"action":      action,
		}).Warn("Review rejected for week status")
		return nil, &TransitionError{Action: action, WeekStatus: week.Status}
	}

	toStatus := models.StatusApproved
	if action == models.ActionRework {
		toStatus = models.StatusRework
	}

	feedback := &models.FeedbackComment{
		RecordID:  week.EarliestRecord().ID,
		ManagerID: manager.ID,
		Action:    action,
		Comment:   comment,
	}

	_, err = s.recordRepo.TransitionWeek(
		employeeID, start, week.WeekEnd,
		[]string{models.StatusSubmitted},
		toStatus, nil, feedback)
	if err != nil {
		s.logger.WithError(err).Error("Failed to apply review transition")
		return nil, err
	}

	reviewed, err := s.aggregator.WeekFor(employeeID, start)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.notifier.NotifyReviewed(reviewed, employee, action, comment); err != nil {
			s.logger.WithError(err).Error("Failed to notify employee about review")
		}
	}()

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"week_start":  start.Format("2006-01-02"),
		"action":      action,
		"week_status": reviewed.Status,
	}).Info("Week reviewed successfully")

	return reviewed, nil
}

// checkReviewer verifies the reviewer exists, holds a reviewing role and, for
// plain managers, that the target employee is one of their reports. Admins
// have organization-wide scope.
func (s *ReviewService) checkReviewer(managerID, employeeID uint) (*models.Employee, *models.Employee, error) {
	manager, err := s.employeeRepo.GetByID(managerID)
	if err != nil {
		return nil, nil, err
	}
	if manager == nil {
		return nil, nil, ErrNotFound
	}
	if !manager.IsManager() {
		return nil, nil, ErrForbidden
	}

	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, nil, err
	}
	if employee == nil {
		return nil, nil, ErrNotFound
	}

	if !manager.IsAdmin() {
		if employee.ManagerID == nil || *employee.ManagerID != manager.ID {
			s.logger.WithFields(logrus.Fields{
				"manager_id":  managerID,
				"employee_id": employeeID,
			}).Warn("Manager attempted to review outside their team")
			return nil, nil, ErrForbidden
		}
	}

	return manager, employee, nil
}

func (s *ReviewService) notifyManager(employeeID uint, week *models.WeekSubmission) {
	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil || employee == nil || employee.ManagerID == nil {
		return
	}

	manager, err := s.employeeRepo.GetByID(*employee.ManagerID)
	if err != nil || manager == nil {
		return
	}

	if err := s.notifier.NotifySubmitted(week, manager); err != nil {
		s.logger.WithError(err).Error("Failed to notify manager about submission")
	}
}
