package repository

import (
	"errors"
	"worklog-service/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FeedbackRepository is append-only: comments are never updated or deleted,
// corrections are made by adding a new comment.
type FeedbackRepository interface {
	Create(comment *models.FeedbackComment) error
	ListByRecordIDs(recordIDs []uint) ([]models.FeedbackComment, error)
}

type GormFeedbackRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormFeedbackRepository(db *gorm.DB) (*GormFeedbackRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if err := db.AutoMigrate(&models.FeedbackComment{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate feedback_comments table")
		return nil, err
	}

	logger.Info("Feedback repository initialized")

	return &GormFeedbackRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormFeedbackRepository) Create(comment *models.FeedbackComment) error {
	r.logger.WithFields(logrus.Fields{
		"record_id":  comment.RecordID,
		"manager_id": comment.ManagerID,
		"action":     comment.Action,
	}).Info("Creating feedback comment")

	if !comment.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"record_id": comment.RecordID,
			"action":    comment.Action,
		}).Warn("Invalid feedback comment data")
		return errors.New("invalid feedback comment data")
	}

	result := r.db.Create(comment)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create feedback comment")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":        comment.ID,
		"record_id": comment.RecordID,
		"action":    comment.Action,
	}).Info("Feedback comment created successfully")

	return nil
}

// ListByRecordIDs returns the comments attached to any of the given records,
// newest first.
func (r *GormFeedbackRepository) ListByRecordIDs(recordIDs []uint) ([]models.FeedbackComment, error) {
	if len(recordIDs) == 0 {
		return []models.FeedbackComment{}, nil
	}

	var comments []models.FeedbackComment
	result := r.db.Where("record_id IN ?", recordIDs).
		Order("created_at DESC, id DESC").
		Find(&comments)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to list feedback comments")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"records": len(recordIDs),
		"count":   len(comments),
	}).Debug("Retrieved feedback comments")

	return comments, nil
}
