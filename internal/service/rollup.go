package service

import (
	"fmt"
	"sort"
	"time"
	"worklog-service/internal/models"
	"worklog-service/internal/repository"
	"worklog-service/pkg/workweek"

	"github.com/sirupsen/logrus"
)

// Worklist sort orders.
const (
	SortDeadlineSoonest = "deadline_soonest"
	SortNewestSubmitted = "newest_submitted"
	SortOldestSubmitted = "oldest_submitted"
)

// RollupFilters narrows the worklist. Zero values mean no filtering.
type RollupFilters struct {
	EmployeeID uint
	Status     string
}

// RollupItem is one worklist row: the weekly submission plus its SLA clock.
// Deadline and bucket are only set while the week is awaiting review.
type RollupItem struct {
	Week     *models.WeekSubmission `json:"week"`
	Deadline *time.Time             `json:"deadline,omitempty"`
	Bucket   string                 `json:"bucket,omitempty"`
}

// RollupService builds the manager-facing worklist by re-running the week
// aggregator across a reporting population. It performs no writes; all
// mutation goes through the review service.
type RollupService struct {
	aggregator   *WeekAggregator
	employeeRepo *repository.EmployeeRepository
	tracker      *DeadlineTracker
	logger       *logrus.Logger
}

func NewRollupService(aggregator *WeekAggregator, employeeRepo *repository.EmployeeRepository, tracker *DeadlineTracker) *RollupService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &RollupService{
		aggregator:   aggregator,
		employeeRepo: employeeRepo,
		tracker:      tracker,
		logger:       logger,
	}
}

// TeamSubmissions returns the reviewer's worklist for a reporting window.
// Managers see their direct reports, admins the whole organization.
func (s *RollupService) TeamSubmissions(reviewerID uint, window string, weeksBack int, filters RollupFilters, sortOrder string) ([]RollupItem, error) {
	reviewer, err := s.employeeRepo.GetByID(reviewerID)
	if err != nil {
		return nil, err
	}
	if reviewer == nil {
		return nil, ErrNotFound
	}
	if !reviewer.IsManager() {
		return nil, ErrForbidden
	}

	if filters.Status != "" && !models.ValidStatus(filters.Status) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", filters.Status)}
	}
	if sortOrder == "" {
		sortOrder = SortDeadlineSoonest
	}
	if sortOrder != SortDeadlineSoonest && sortOrder != SortNewestSubmitted && sortOrder != SortOldestSubmitted {
		return nil, &ValidationError{Field: "sort", Reason: fmt.Sprintf("unknown sort order %q", sortOrder)}
	}

	now := time.Now()
	from, to, err := workweek.ResolveWindow(window, weeksBack, now)
	if err != nil {
		return nil, &ValidationError{Field: "window", Reason: err.Error()}
	}

	population, err := s.population(reviewer)
	if err != nil {
		return nil, err
	}

	items := []RollupItem{}
	for _, employee := range population {
		if filters.EmployeeID != 0 && employee.ID != filters.EmployeeID {
			continue
		}

		weeks, err := s.aggregator.WeeksInRange(employee.ID, from, to)
		if err != nil {
			return nil, err
		}

		for _, week := range weeks {
			if filters.Status != "" && week.Status != filters.Status {
				continue
			}
			items = append(items, s.buildItem(week, now))
		}
	}

	s.sortItems(items, sortOrder)

	s.logger.WithFields(logrus.Fields{
		"reviewer_id": reviewerID,
		"window":      window,
		"sort":        sortOrder,
		"count":       len(items),
	}).Debug("Built team submissions worklist")

	return items, nil
}

func (s *RollupService) population(reviewer *models.Employee) ([]*models.Employee, error) {
	if reviewer.IsAdmin() {
		return s.employeeRepo.ListAll()
	}
	return s.employeeRepo.ListByManager(reviewer.ID)
}

func (s *RollupService) buildItem(week *models.WeekSubmission, now time.Time) RollupItem {
	item := RollupItem{Week: week}

	if week.Status == models.StatusSubmitted && week.SubmittedAt != nil {
		deadline := s.tracker.Deadline(*week.SubmittedAt)
		item.Deadline = &deadline
		item.Bucket = s.tracker.Bucket(*week.SubmittedAt, now)
	}

	return item
}

// sortItems orders the worklist. Weeks that were never submitted have no
// deadline or submission time and always sort last.
func (s *RollupService) sortItems(items []RollupItem, sortOrder string) {
	switch sortOrder {
	case SortDeadlineSoonest:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Deadline == nil {
				return false
			}
			if items[j].Deadline == nil {
				return true
			}
			return items[i].Deadline.Before(*items[j].Deadline)
		})
	case SortNewestSubmitted:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].Week.SubmittedAt, items[j].Week.SubmittedAt
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.After(*b)
		})
	case SortOldestSubmitted:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].Week.SubmittedAt, items[j].Week.SubmittedAt
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	}
}
