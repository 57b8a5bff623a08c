package service

import (
	"sort"
	"time"
	"worklog-service/internal/models"
	"worklog-service/internal/repository"
	"worklog-service/pkg/workweek"

	"github.com/sirupsen/logrus"
)

// WeekAggregator groups an employee's daily records into weekly submission
// units. It only reads: derived status, totals and counts are recomputed from
// the rows on every call, never stored.
type WeekAggregator struct {
	recordRepo repository.DailyLogRepository
	logger     *logrus.Logger
}

func NewWeekAggregator(recordRepo repository.DailyLogRepository) *WeekAggregator {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &WeekAggregator{
		recordRepo: recordRepo,
		logger:     logger,
	}
}

// WeekFor builds the submission unit for the week containing ref. A week with
// zero records yields nil, not an empty submission.
func (a *WeekAggregator) WeekFor(employeeID uint, ref time.Time) (*models.WeekSubmission, error) {
	weekStart := workweek.WeekStart(ref)
	weekEnd := workweek.WeekEnd(weekStart)

	records, err := a.recordRepo.ListByEmployeeAndRange(employeeID, weekStart, weekEnd)
	if err != nil {
		a.logger.WithError(err).Error("Failed to load records for week")
		return nil, err
	}

	if len(records) == 0 {
		a.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"week_start":  weekStart.Format("2006-01-02"),
		}).Debug("No records in week")
		return nil, nil
	}

	return models.NewWeekSubmission(employeeID, weekStart, weekEnd, records), nil
}

// WeeksInRange scans [from, to] and builds one submission per week that has at
// least one record, newest week first. Historical weeks outside the live
// window are still enumerated here.
func (a *WeekAggregator) WeeksInRange(employeeID uint, from, to time.Time) ([]*models.WeekSubmission, error) {
	records, err := a.recordRepo.ListByEmployeeAndRange(employeeID, workweek.Normalize(from), workweek.Normalize(to))
	if err != nil {
		a.logger.WithError(err).Error("Failed to load records for range")
		return nil, err
	}

	byWeek := make(map[time.Time][]models.DailyLogRecord)
	for _, r := range records {
		start := workweek.WeekStart(r.Date)
		byWeek[start] = append(byWeek[start], r)
	}

	weeks := make([]*models.WeekSubmission, 0, len(byWeek))
	for start, recs := range byWeek {
		weeks = append(weeks, models.NewWeekSubmission(employeeID, start, workweek.WeekEnd(start), recs))
	}

	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.After(weeks[j].WeekStart)
	})

	a.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"from":        from.Format("2006-01-02"),
		"to":          to.Format("2006-01-02"),
		"weeks":       len(weeks),
	}).Debug("Aggregated weeks in range")

	return weeks, nil
}
