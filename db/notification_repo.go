package db

import (
	"github.com/pkg/errors"

	errs "github.com/greencycle/wastetrack/errors"
	"github.com/greencycle/wastetrack/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	UnreadByUser(userID uint) ([]models.Notification, error)
	MarkRead(notificationID uint) error
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (r *notificationRepo) UnreadByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.DB.Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "listing unread notifications")
	}
	return notifications, nil
}

// MarkRead is idempotent: marking an already-read notification succeeds.
func (r *notificationRepo) MarkRead(notificationID uint) error {
	result := r.DB.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "marking notification read")
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
