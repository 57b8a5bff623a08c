package repository

import (
	"errors"
	"time"
	"worklog-service/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrNoEligibleRecords is returned by TransitionWeek when the status filter
// matches nothing, e.g. when a concurrent review already moved the records.
var ErrNoEligibleRecords = errors.New("no records eligible for transition")

type DailyLogRepository interface {
	Create(record *models.DailyLogRecord) error
	Update(record *models.DailyLogRecord) error
	GetByID(id uint) (*models.DailyLogRecord, error)
	GetByEmployeeAndDate(employeeID uint, date time.Time) (*models.DailyLogRecord, error)
	ListByEmployeeAndRange(employeeID uint, from, to time.Time) ([]models.DailyLogRecord, error)
	DeleteByID(id uint) error
	TransitionWeek(employeeID uint, weekStart, weekEnd time.Time, fromStatuses []string, toStatus string, submittedAt *time.Time, comment *models.FeedbackComment) (int64, error)
}

type GormDailyLogRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormDailyLogRepository(db *gorm.DB) (*GormDailyLogRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.DailyLogRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate daily_log_records table")
		return nil, err
	}

	logger.Info("Daily log repository initialized")

	return &GormDailyLogRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormDailyLogRepository) Create(record *models.DailyLogRecord) error {
	r.logger.WithFields(logrus.Fields{
		"employee_id": record.EmployeeID,
		"date":        record.Date.Format("2006-01-02"),
	}).Info("Creating daily log record")

	if !record.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"employee_id": record.EmployeeID,
			"date":        record.Date.Format("2006-01-02"),
		}).Warn("Invalid daily log record data")
		return errors.New("invalid daily log record data")
	}

	// One record per employee per date
	existing, err := r.GetByEmployeeAndDate(record.EmployeeID, record.Date)
	if err != nil {
		r.logger.WithError(err).Error("Failed to check existing record")
		return err
	}

	if existing != nil {
		r.logger.WithFields(logrus.Fields{
			"employee_id": record.EmployeeID,
			"date":        record.Date.Format("2006-01-02"),
		}).Warn("Daily log record already exists for this date")
		return errors.New("daily log record already exists for this date")
	}

	result := r.db.Create(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create daily log record")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":          record.ID,
		"employee_id": record.EmployeeID,
		"status":      record.Status,
	}).Info("Daily log record created successfully")

	return nil
}

func (r *GormDailyLogRepository) Update(record *models.DailyLogRecord) error {
	r.logger.WithFields(logrus.Fields{
		"id":          record.ID,
		"employee_id": record.EmployeeID,
	}).Info("Updating daily log record")

	if !record.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"id":          record.ID,
			"employee_id": record.EmployeeID,
		}).Warn("Invalid daily log record data for update")
		return errors.New("invalid daily log record data")
	}

	existing, err := r.GetByID(record.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		r.logger.WithField("id", record.ID).Warn("Daily log record not found for update")
		return errors.New("daily log record not found")
	}

	record.UpdatedAt = time.Now()

	result := r.db.Save(record)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update daily log record")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":          record.ID,
		"employee_id": record.EmployeeID,
		"status":      record.Status,
	}).Info("Daily log record updated successfully")

	return nil
}

func (r *GormDailyLogRepository) GetByID(id uint) (*models.DailyLogRecord, error) {
	var record models.DailyLogRecord
	result := r.db.First(&record, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Daily log record not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get daily log record by ID")
		return nil, result.Error
	}

	return &record, nil
}

func (r *GormDailyLogRepository) GetByEmployeeAndDate(employeeID uint, date time.Time) (*models.DailyLogRecord, error) {
	var record models.DailyLogRecord
	result := r.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"date":        date.Format("2006-01-02"),
		}).Debug("Daily log record not found for employee/date")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get daily log record by employee and date")
		return nil, result.Error
	}

	return &record, nil
}

func (r *GormDailyLogRepository) ListByEmployeeAndRange(employeeID uint, from, to time.Time) ([]models.DailyLogRecord, error) {
	var records []models.DailyLogRecord

	result := r.db.Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, from, to).
		Order("date ASC").
		Find(&records)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list daily log records by range")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"from":        from.Format("2006-01-02"),
		"to":          to.Format("2006-01-02"),
		"count":       len(records),
	}).Debug("Retrieved daily log records by range")

	return records, nil
}

func (r *GormDailyLogRepository) DeleteByID(id uint) error {
	r.logger.WithField("id", id).Info("Deleting daily log record by ID")

	result := r.db.Delete(&models.DailyLogRecord{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete daily log record")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Daily log record not found for deletion")
		return errors.New("daily log record not found")
	}

	r.logger.WithField("id", id).Info("Daily log record deleted successfully")
	return nil
}

// TransitionWeek moves every record of the employee's week whose status is in
// fromStatuses to toStatus, optionally stamping SubmittedAt and appending one
// feedback comment. The whole batch runs in a single transaction: the status
// filter is re-evaluated inside it, so the update only touches records still
// in an expected source status at commit time, and either the full transition
// plus comment land or nothing does.
func (r *GormDailyLogRepository) TransitionWeek(employeeID uint, weekStart, weekEnd time.Time, fromStatuses []string, toStatus string, submittedAt *time.Time, comment *models.FeedbackComment) (int64, error) {
	r.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"week_start":  weekStart.Format("2006-01-02"),
		"to_status":   toStatus,
	}).Info("Transitioning week records")

	var affected int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     toStatus,
			"updated_at": time.Now(),
		}
		if submittedAt != nil {
			updates["submitted_at"] = *submittedAt
		}

		result := tx.Model(&models.DailyLogRecord{}).
			Where("employee_id = ? AND date BETWEEN ? AND ? AND status IN ?",
				employeeID, weekStart, weekEnd, fromStatuses).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}

		affected = result.RowsAffected
		if affected == 0 {
			return ErrNoEligibleRecords
		}

		if comment != nil {
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to transition week records")
		return 0, err
	}

	r.logger.WithFields(logrus.Fields{
		"employee_id":   employeeID,
		"week_start":    weekStart.Format("2006-01-02"),
		"to_status":     toStatus,
		"rows_affected": affected,
	}).Info("Week records transitioned successfully")

	return affected, nil
}
