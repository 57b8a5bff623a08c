package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineTracker(t *testing.T) {
	tracker := NewDeadlineTracker(48)
	submittedAt := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

	t.Run("deadline is submission plus SLA", func(t *testing.T) {
		assert.Equal(t, submittedAt.Add(48*time.Hour), tracker.Deadline(submittedAt))
	})

	t.Run("remaining and elapsed", func(t *testing.T) {
		now := submittedAt.Add(10 * time.Hour)
		assert.Equal(t, 38*time.Hour, tracker.Remaining(submittedAt, now))
		assert.Equal(t, 10*time.Hour, tracker.Elapsed(submittedAt, now))
	})
}

func TestDeadlineBuckets(t *testing.T) {
	tracker := NewDeadlineTracker(48)
	submittedAt := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"fresh submission is normal", time.Hour, BucketNormal},
		{"just under 46h is still normal", 46*time.Hour - time.Second, BucketNormal},
		{"exactly 46h elapsed turns urgent", 46 * time.Hour, BucketUrgent},
		{"exactly at the deadline, remaining zero, still urgent", 48 * time.Hour, BucketUrgent},
		{"one second past the deadline is overdue", 48*time.Hour + time.Second, BucketOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := submittedAt.Add(tt.elapsed)
			assert.Equal(t, tt.want, tracker.Bucket(submittedAt, now))
		})
	}
}

func TestDeadlineTrackerDefaultSLA(t *testing.T) {
	tracker := NewDeadlineTracker(0)
	submittedAt := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, submittedAt.Add(DefaultReviewSLAHours*time.Hour), tracker.Deadline(submittedAt))
}
