package service

import (
	"strings"
	"testing"
	"time"
	"worklog-service/internal/models"
	"worklog-service/pkg/workweek"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDescription = "worked on the quarterly reporting pipeline"

func TestUpsertRecordValidation(t *testing.T) {
	f := newFixture(t)
	today := time.Now()

	tests := []struct {
		name     string
		category string
		minutes  int
		blockers string
		field    string
	}{
		{"unknown category", "golfing", 60, "", "category"},
		{"zero minutes", models.CategoryTask, 0, "", "minutes"},
		{"too many minutes", models.CategoryTask, 961, "", "minutes"},
		{"blockers too long", models.CategoryTask, 60, strings.Repeat("x", 501), "blockers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.worklog.UpsertRecord(f.employee.ID, today, tt.category, validDescription, tt.minutes, tt.blockers)
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestUpsertRecordCreateThenUpdate(t *testing.T) {
	f := newFixture(t)
	today := time.Now()

	record, err := f.worklog.UpsertRecord(f.employee.ID, today, models.CategoryTask, validDescription, 480, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, record.Status)
	assert.Nil(t, record.SubmittedAt)

	// second upsert for the same date edits in place
	updated, err := f.worklog.UpsertRecord(f.employee.ID, today, models.CategoryMeeting, validDescription, 240, "waiting on access")
	require.NoError(t, err)
	assert.Equal(t, record.ID, updated.ID)
	assert.Equal(t, models.CategoryMeeting, updated.Category)
	assert.Equal(t, 240, updated.Minutes)

	records, err := f.worklog.ListRecords(f.employee.ID, workweek.WeekStart(today), workweek.WeekEnd(workweek.WeekStart(today)))
	require.NoError(t, err)
	assert.Len(t, records, 1, "one record per employee per date")
}

func TestUpsertRecordRejectsFutureDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.worklog.UpsertRecord(f.employee.ID, time.Now().AddDate(0, 0, 1), models.CategoryTask, validDescription, 60, "")
	assert.ErrorIs(t, err, ErrRecordLocked)
}

func TestUpsertRecordRejectsLockedWeek(t *testing.T) {
	f := newFixture(t)
	today := workweek.Normalize(time.Now())

	f.seedRecord(t, f.employee.ID, today, models.StatusSubmitted, 60, models.CategoryTask)

	_, err := f.worklog.UpsertRecord(f.employee.ID, today, models.CategoryTask, validDescription, 120, "")
	assert.ErrorIs(t, err, ErrRecordLocked)
}

func TestUpsertRecordReopensApprovedWeek(t *testing.T) {
	f := newFixture(t)
	today := workweek.Normalize(time.Now())

	if workweek.WeekStart(today).Equal(today) {
		t.Skip("needs an earlier day in the live week")
	}

	approved := f.seedRecord(t, f.employee.ID, workweek.WeekStart(today), models.StatusApproved, 480, models.CategoryTask)

	// editing the approved day stays forbidden
	_, err := f.worklog.UpsertRecord(f.employee.ID, approved.Date, models.CategoryTask, validDescription, 120, "")
	assert.ErrorIs(t, err, ErrRecordLocked)

	// a forgotten day can still be added and reopens the week
	record, err := f.worklog.UpsertRecord(f.employee.ID, today, models.CategoryTask, validDescription, 120, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, record.Status)

	week, err := f.aggregator.WeekFor(f.employee.ID, today)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, week.Status)
}

func TestDeleteRecord(t *testing.T) {
	f := newFixture(t)
	today := time.Now()

	record, err := f.worklog.UpsertRecord(f.employee.ID, today, models.CategoryTask, validDescription, 60, "")
	require.NoError(t, err)

	t.Run("foreign record is rejected", func(t *testing.T) {
		stranger := f.addEmployee(t, "stranger@example.com", models.RoleEmployee, nil)
		err := f.worklog.DeleteRecord(stranger.ID, record.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner deletes while editable", func(t *testing.T) {
		require.NoError(t, f.worklog.DeleteRecord(f.employee.ID, record.ID))

		gone, err := f.recordRepo.GetByID(record.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("missing record reports not found", func(t *testing.T) {
		err := f.worklog.DeleteRecord(f.employee.ID, record.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestWeekHistory(t *testing.T) {
	f := newFixture(t)

	thisWeek := workweek.WeekStart(time.Now())
	lastWeek := thisWeek.AddDate(0, 0, -7)

	f.seedRecord(t, f.employee.ID, thisWeek, models.StatusDraft, 60, models.CategoryTask)
	f.seedRecord(t, f.employee.ID, lastWeek, models.StatusApproved, 480, models.CategoryTask)
	f.seedRecord(t, f.employee.ID, lastWeek.AddDate(0, 0, 1), models.StatusApproved, 480, models.CategorySupport)

	weeks, err := f.worklog.WeekHistory(f.employee.ID, workweek.WindowLastNWeeks, 2)
	require.NoError(t, err)
	require.Len(t, weeks, 2)

	assert.True(t, weeks[0].WeekStart.Equal(thisWeek), "newest week first")
	assert.Equal(t, models.StatusDraft, weeks[0].Status)
	assert.True(t, weeks[1].WeekStart.Equal(lastWeek))
	assert.Equal(t, models.StatusApproved, weeks[1].Status)
	assert.Equal(t, 960, weeks[1].TotalMinutes)

	_, err = f.worklog.WeekHistory(f.employee.ID, "fortnight", 0)
	assert.True(t, IsValidation(err))
}
