package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"
	"worklog-service/internal/models"
	"worklog-service/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// newTestDB opens a uniquely named shared in-memory database so every
// connection in the gorm pool sees the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	return db
}

type fixture struct {
	employeeRepo *repository.EmployeeRepository
	recordRepo   *repository.GormDailyLogRepository
	feedbackRepo *repository.GormFeedbackRepository
	aggregator   *WeekAggregator
	worklog      *WorklogService
	review       *ReviewService
	rollup       *RollupService

	manager  *models.Employee
	employee *models.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)

	employeeRepo, err := repository.NewEmployeeRepository(db)
	require.NoError(t, err)
	recordRepo, err := repository.NewGormDailyLogRepository(db)
	require.NoError(t, err)
	feedbackRepo, err := repository.NewGormFeedbackRepository(db)
	require.NoError(t, err)

	aggregator := NewWeekAggregator(recordRepo)
	tracker := NewDeadlineTracker(48)

	f := &fixture{
		employeeRepo: employeeRepo,
		recordRepo:   recordRepo,
		feedbackRepo: feedbackRepo,
		aggregator:   aggregator,
		worklog:      NewWorklogService(recordRepo, aggregator),
		review:       NewReviewService(recordRepo, feedbackRepo, employeeRepo, aggregator, nil),
		rollup:       NewRollupService(aggregator, employeeRepo, tracker),
	}

	f.manager = f.addEmployee(t, "manager@example.com", models.RoleManager, nil)
	f.employee = f.addEmployee(t, "employee@example.com", models.RoleEmployee, &f.manager.ID)

	return f
}

func (f *fixture) addEmployee(t *testing.T, email, role string, managerID *uint) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		Email:     email,
		FullName:  "Test " + email,
		Role:      role,
		ManagerID: managerID,
	}
	require.NoError(t, f.employeeRepo.Create(employee))

	return employee
}

// seedRecord writes a record through the repository, bypassing the
// editability gate so tests can build weeks in any status.
func (f *fixture) seedRecord(t *testing.T, employeeID uint, date time.Time, status string, minutes int, category string) *models.DailyLogRecord {
	t.Helper()

	record := &models.DailyLogRecord{
		EmployeeID:  employeeID,
		Date:        date,
		Category:    category,
		Description: "a description comfortably over the minimum length",
		Minutes:     minutes,
		Status:      status,
	}
	if status == models.StatusSubmitted || status == models.StatusApproved {
		submittedAt := time.Now().Add(-time.Hour)
		record.SubmittedAt = &submittedAt
	}
	require.NoError(t, f.recordRepo.Create(record))

	return record
}

func (f *fixture) recordStatus(t *testing.T, id uint) string {
	t.Helper()

	record, err := f.recordRepo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, record)

	return record.Status
}
