package repository

import (
	"time"

	"campusboard-backend/internal/notification/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceRepository defines the interface for device-registration operations
type DeviceRepository interface {
	Upsert(email, token string, platform string, environment domain.Environment, appVersion, osVersion string) error
	Deactivate(email, token string) error
	FindActiveByEmail(email string) ([]domain.DeviceRegistration, error)
	DistinctActiveEmails() ([]string, error)
}

// deviceRepository implements DeviceRepository interface
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new instance of deviceRepository
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// Upsert registers a device token (atomic upsert by token).
// Re-registration refreshes metadata and reactivates the row.
func (r *deviceRepository) Upsert(email, token string, platform string, environment domain.Environment, appVersion, osVersion string) error {
	now := time.Now()
	registration := &domain.DeviceRegistration{
		ID:          uuid.New().String(),
		Email:       email,
		DeviceToken: token,
		Platform:    platform,
		Environment: environment,
		AppVersion:  appVersion,
		OSVersion:   osVersion,
		IsActive:    true,
		LastUsedAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Atomic upsert: INSERT ... ON CONFLICT (device_token) DO UPDATE
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "device_token"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "platform", "environment", "app_version", "os_version",
			"is_active", "last_used_at", "updated_at",
		}),
	}).Create(registration).Error
}

// Deactivate marks the (email, token) pair inactive. Idempotent; a
// missing row is not an error.
func (r *deviceRepository) Deactivate(email, token string) error {
	return r.db.Model(&domain.DeviceRegistration{}).
		Where("email = ? AND device_token = ?", email, token).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

func (r *deviceRepository) FindActiveByEmail(email string) ([]domain.DeviceRegistration, error) {
	var registrations []domain.DeviceRegistration
	err := r.db.
		Where("LOWER(email) = LOWER(?) AND is_active = ?", email, true).
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *deviceRepository) DistinctActiveEmails() ([]string, error) {
	var emails []string
	err := r.db.Model(&domain.DeviceRegistration{}).
		Distinct("email").
		Where("is_active = ?", true).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
