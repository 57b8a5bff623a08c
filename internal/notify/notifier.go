package notify

import (
	"worklog-service/internal/models"
)

// Notifier pings the people waiting on a submission: the manager when a week
// is submitted, the employee when it is reviewed. Delivery is best-effort and
// never blocks or fails the underlying transition.
type Notifier interface {
	NotifySubmitted(week *models.WeekSubmission, manager *models.Employee) error
	NotifyReviewed(week *models.WeekSubmission, employee *models.Employee, action, comment string) error
}

// NopNotifier is used when no notification channel is configured.
type NopNotifier struct{}

func (NopNotifier) NotifySubmitted(*models.WeekSubmission, *models.Employee) error {
	return nil
}

func (NopNotifier) NotifyReviewed(*models.WeekSubmission, *models.Employee, string, string) error {
	return nil
}
