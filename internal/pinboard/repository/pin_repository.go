package repository

import (
	"errors"
	"time"

	"campusboard-backend/internal/pinboard/domain"

	"gorm.io/gorm"
)

// PinRepository defines the interface for pin persistence
type PinRepository interface {
	FindActive(now time.Time, ttl time.Duration, rows, cols int) ([]domain.Pin, error)
	FindByID(id string) (*domain.Pin, error)
	Claim(pin *domain.Pin, ttl time.Duration) error
	CountLiveByCreator(email string, now time.Time, ttl time.Duration) (int64, error)
	DeleteByID(id string) error
	DeleteExpired(cutoff time.Time) (int64, error)
}

// pinRepository implements PinRepository using GORM
type pinRepository struct {
	db *gorm.DB
}

// NewPinRepository creates a new instance of pinRepository
func NewPinRepository(db *gorm.DB) PinRepository {
	return &pinRepository{
		db: db,
	}
}

// FindActive returns live pins inside the grid bounds, newest first.
func (r *pinRepository) FindActive(now time.Time, ttl time.Duration, rows, cols int) ([]domain.Pin, error) {
	cutoff := now.Add(-ttl)
	var pins []domain.Pin
	err := r.db.
		Where("created_at > ? AND grid_row >= 0 AND grid_row < ? AND grid_col >= 0 AND grid_col < ?",
			cutoff, rows, cols).
		Order("created_at DESC").
		Find(&pins).Error
	if err != nil {
		return nil, err
	}
	return pins, nil
}

func (r *pinRepository) FindByID(id string) (*domain.Pin, error) {
	var pin domain.Pin
	err := r.db.Where("id = ?", id).First(&pin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pin, nil
}

// Claim inserts the pin, taking over the slot if its current occupant
// has expired. The delete and insert run in one transaction; the unique
// index on (grid_row, grid_col) arbitrates concurrent claims, so two
// simultaneous claims to the same empty slot yield exactly one winner.
func (r *pinRepository) Claim(pin *domain.Pin, ttl time.Duration) error {
	cutoff := pin.CreatedAt.Add(-ttl)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Free the slot if only an expired pin holds it.
		if err := tx.
			Where("grid_row = ? AND grid_col = ? AND created_at <= ?", pin.GridRow, pin.GridCol, cutoff).
			Delete(&domain.Pin{}).Error; err != nil {
			return err
		}
		return tx.Create(pin).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrSlotOccupied
	}
	return err
}

func (r *pinRepository) CountLiveByCreator(email string, now time.Time, ttl time.Duration) (int64, error) {
	cutoff := now.Add(-ttl)
	var count int64
	err := r.db.Model(&domain.Pin{}).
		Where("LOWER(creator_email) = LOWER(?) AND created_at > ?", email, cutoff).
		Count(&count).Error
	return count, err
}

func (r *pinRepository) DeleteByID(id string) error {
	return r.db.Delete(&domain.Pin{}, "id = ?", id).Error
}

// DeleteExpired physically removes pins created at or before cutoff.
// Run by the maintenance reaper; liveness filtering never depends on it.
func (r *pinRepository) DeleteExpired(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at <= ?", cutoff).Delete(&domain.Pin{})
	return result.RowsAffected, result.Error
}
