package repository

import (
	"campusboard-backend/internal/message/domain"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for message persistence
type MessageRepository interface {
	Create(message *domain.Message) error
	FindByReceiver(email string) ([]domain.Message, error)
	FindBySender(email string) ([]domain.Message, error)
}

// messageRepository implements MessageRepository using GORM
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of messageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) Create(message *domain.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) FindByReceiver(email string) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.
		Where("LOWER(receiver_email) = LOWER(?)", email).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) FindBySender(email string) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.
		Where("LOWER(sender_email) = LOWER(?)", email).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
