package database

import (
	"fmt"

	"campusboard-backend/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresConnection opens the database used for pins, messages and
// device registrations. TranslateError is required so unique-index
// violations surface as gorm.ErrDuplicatedKey (the slot-claim path
// depends on it).
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	return db, nil
}
