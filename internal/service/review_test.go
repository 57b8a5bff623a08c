package service

import (
	"testing"
	"time"
	"worklog-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMonday is a week safely in the past; submission transitions depend
// only on derived status, not on the calendar.
var fixedMonday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func TestSubmitReviewCycle(t *testing.T) {
	f := newFixture(t)

	monday := f.seedRecord(t, f.employee.ID, fixedMonday, models.StatusDraft, 480, models.CategoryTask)
	tuesday := f.seedRecord(t, f.employee.ID, fixedMonday.AddDate(0, 0, 1), models.StatusDraft, 240, models.CategoryMeeting)

	// employee submits
	week, err := f.review.SubmitWeek(f.employee.ID, fixedMonday)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, week.Status)
	assert.Equal(t, 720, week.TotalMinutes)
	assert.Equal(t, 2, week.DaysLogged)
	require.NotNil(t, week.SubmittedAt)

	// a 9-character rework comment is rejected before anything moves
	_, err = f.review.RequestRework(f.employee.ID, fixedMonday, f.manager.ID, "too short")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, models.StatusSubmitted, f.recordStatus(t, monday.ID))
	assert.Equal(t, models.StatusSubmitted, f.recordStatus(t, tuesday.ID))

	comments, err := f.review.ListComments(f.employee.ID, fixedMonday)
	require.NoError(t, err)
	assert.Empty(t, comments, "a rejected rework leaves no feedback behind")

	// manager sends the week back with a usable comment
	week, err = f.review.RequestRework(f.employee.ID, fixedMonday, f.manager.ID,
		"Please add more detail on Tuesday's meeting outcomes.")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRework, week.Status)
	assert.Equal(t, models.StatusRework, f.recordStatus(t, monday.ID))
	assert.Equal(t, models.StatusRework, f.recordStatus(t, tuesday.ID))

	comments, err = f.review.ListComments(f.employee.ID, fixedMonday)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, models.ActionRework, comments[0].Action)
	assert.Equal(t, f.manager.ID, comments[0].ManagerID)

	// resubmission moves every draft-or-rework record
	week, err = f.review.SubmitWeek(f.employee.ID, fixedMonday)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, week.Status)

	// manager approves without a comment
	week, err = f.review.ApproveWeek(f.employee.ID, fixedMonday, f.manager.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, week.Status)
	assert.Equal(t, models.StatusApproved, f.recordStatus(t, monday.ID))
	assert.Equal(t, models.StatusApproved, f.recordStatus(t, tuesday.ID))

	comments, err = f.review.ListComments(f.employee.ID, fixedMonday)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, models.ActionApproved, comments[0].Action, "newest first")
	assert.Equal(t, models.ActionRework, comments[1].Action)

	// approved is terminal for further transitions
	_, err = f.review.ApproveWeek(f.employee.ID, fixedMonday, f.manager.ID, "")
	assert.True(t, IsTransition(err))
	_, err = f.review.SubmitWeek(f.employee.ID, fixedMonday)
	assert.True(t, IsTransition(err))
}

func TestPartialResubmission(t *testing.T) {
	f := newFixture(t)

	r1 := f.seedRecord(t, f.employee.ID, fixedMonday, models.StatusRework, 480, models.CategoryTask)
	r2 := f.seedRecord(t, f.employee.ID, fixedMonday.AddDate(0, 0, 1), models.StatusApproved, 240, models.CategoryMeeting)

	week, err := f.aggregator.WeekFor(f.employee.ID, fixedMonday)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRework, week.Status)

	week, err = f.review.SubmitWeek(f.employee.ID, fixedMonday)
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, f.recordStatus(t, r1.ID))
	assert.Equal(t, models.StatusApproved, f.recordStatus(t, r2.ID), "prior approval survives resubmission")
	assert.Equal(t, models.StatusSubmitted, week.Status, "no rework left, not uniformly approved")
}

func TestSubmitWeekWithoutRecords(t *testing.T) {
	f := newFixture(t)

	_, err := f.review.SubmitWeek(f.employee.ID, fixedMonday)
	assert.ErrorIs(t, err, ErrNotFound, "absence of records is absence of a week")
}

func TestReviewRequiresSubmittedWeek(t *testing.T) {
	f := newFixture(t)

	f.seedRecord(t, f.employee.ID, fixedMonday, models.StatusDraft, 60, models.CategoryTask)

	_, err := f.review.ApproveWeek(f.employee.ID, fixedMonday, f.manager.ID, "")
	assert.True(t, IsTransition(err))

	_, err = f.review.RequestRework(f.employee.ID, fixedMonday, f.manager.ID, "needs much more detail")
	assert.True(t, IsTransition(err))

	assert.Equal(t, models.StatusDraft, weekStatusNow(t, f))
}

// weekStatusNow re-reads the week to assert nothing moved.
func weekStatusNow(t *testing.T, f *fixture) string {
	t.Helper()

	week, err := f.aggregator.WeekFor(f.employee.ID, fixedMonday)
	require.NoError(t, err)
	require.NotNil(t, week)

	return week.Status
}

func TestReviewerScope(t *testing.T) {
	f := newFixture(t)

	f.seedRecord(t, f.employee.ID, fixedMonday, models.StatusSubmitted, 60, models.CategoryTask)

	otherManager := f.addEmployee(t, "other-manager@example.com", models.RoleManager, nil)
	peer := f.addEmployee(t, "peer@example.com", models.RoleEmployee, &f.manager.ID)
	admin := f.addEmployee(t, "admin@example.com", models.RoleAdmin, nil)

	_, err := f.review.ApproveWeek(f.employee.ID, fixedMonday, otherManager.ID, "")
	assert.ErrorIs(t, err, ErrForbidden, "managers may only review their own reports")

	_, err = f.review.ApproveWeek(f.employee.ID, fixedMonday, peer.ID, "")
	assert.ErrorIs(t, err, ErrForbidden, "employees cannot review")

	week, err := f.review.ApproveWeek(f.employee.ID, fixedMonday, admin.ID, "")
	require.NoError(t, err, "admins have organization-wide scope")
	assert.Equal(t, models.StatusApproved, week.Status)
}

func TestImplicitReopen(t *testing.T) {
	f := newFixture(t)

	f.seedRecord(t, f.employee.ID, fixedMonday, models.StatusSubmitted, 60, models.CategoryTask)

	week, err := f.review.ApproveWeek(f.employee.ID, fixedMonday, f.manager.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, week.Status)

	// a forgotten day added as draft re-derives the week, no reopen edge
	f.seedRecord(t, f.employee.ID, fixedMonday.AddDate(0, 0, 3), models.StatusDraft, 120, models.CategoryOther)

	week, err = f.aggregator.WeekFor(f.employee.ID, fixedMonday)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, week.Status)
}

func TestSubmitStampsSubmissionTime(t *testing.T) {
	f := newFixture(t)

	f.seedRecord(t, f.employee.ID, fixedMonday, models.StatusDraft, 60, models.CategoryTask)

	before := time.Now().Add(-time.Second)
	week, err := f.review.SubmitWeek(f.employee.ID, fixedMonday)
	require.NoError(t, err)
	after := time.Now().Add(time.Second)

	require.NotNil(t, week.SubmittedAt)
	assert.True(t, week.SubmittedAt.After(before) && week.SubmittedAt.Before(after))
}
