package repository

import (
	"campusboard-backend/internal/notification/domain"

	"gorm.io/gorm"
)

// NotificationLogRepository records delivered notifications for audit.
type NotificationLogRepository interface {
	Create(entry *domain.NotificationLog) error
}

type notificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository creates a new instance of notificationLogRepository
func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &notificationLogRepository{
		db: db,
	}
}

func (r *notificationLogRepository) Create(entry *domain.NotificationLog) error {
	return r.db.Create(entry).Error
}
