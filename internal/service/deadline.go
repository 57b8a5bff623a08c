package service

import "time"

// Deadline buckets for worklist prioritization.
const (
	BucketOverdue = "overdue"
	BucketUrgent  = "urgent"
	BucketNormal  = "normal"
)

// urgentThreshold is how much remaining time still counts as urgent.
const urgentThreshold = 2 * time.Hour

// DefaultReviewSLAHours is the review window measured from submission.
const DefaultReviewSLAHours = 48

// DeadlineTracker computes the review SLA clock for a submitted week. The
// deadline is never stored: it is derived from the submission timestamp on
// every query, and nothing transitions automatically when it passes.
type DeadlineTracker struct {
	sla time.Duration
}

func NewDeadlineTracker(slaHours int) *DeadlineTracker {
	if slaHours <= 0 {
		slaHours = DefaultReviewSLAHours
	}
	return &DeadlineTracker{sla: time.Duration(slaHours) * time.Hour}
}

// Deadline returns the point in time by which the review is expected.
func (t *DeadlineTracker) Deadline(submittedAt time.Time) time.Time {
	return submittedAt.Add(t.sla)
}

// Remaining returns the time left until the deadline, negative once overdue.
func (t *DeadlineTracker) Remaining(submittedAt, now time.Time) time.Duration {
	return t.Deadline(submittedAt).Sub(now)
}

// Elapsed returns the time since submission.
func (t *DeadlineTracker) Elapsed(submittedAt, now time.Time) time.Duration {
	return now.Sub(submittedAt)
}

// Bucket classifies a pending review: overdue (past deadline), urgent (less
// than two hours left, deadline itself included) or normal.
func (t *DeadlineTracker) Bucket(submittedAt, now time.Time) string {
	remaining := t.Remaining(submittedAt, now)
	switch {
	case remaining < 0:
		return BucketOverdue
	case remaining < urgentThreshold:
		return BucketUrgent
	default:
		return BucketNormal
	}
}
