package usecase

import (
	"fmt"
	"log"
	"strings"
	"time"

	"campusboard-backend/internal/message/domain"
	"campusboard-backend/internal/message/repository"
	pindomain "campusboard-backend/internal/pinboard/domain"

	"github.com/google/uuid"
)

// PinFinder resolves a pin by id; the pinboard repository satisfies it.
type PinFinder interface {
	FindByID(id string) (*pindomain.Pin, error)
}

// ReplyNotifier pushes a reply notification to the receiver's devices.
// Implemented by the notification dispatcher.
type ReplyNotifier interface {
	NotifyReply(receiverEmail, senderEmail, pinID, messageText, messageID, senderAuthor string) int
}

// MessageUsecase defines the interface for reply-thread operations
type MessageUsecase interface {
	Post(pinID, senderEmail, text, author string) (*domain.Message, error)
	List(ownerEmail string, box domain.Mailbox) ([]domain.Message, error)
}

// messageUsecase implements MessageUsecase interface
type messageUsecase struct {
	messageRepo repository.MessageRepository
	pins        PinFinder
	notifier    ReplyNotifier
}

// NewMessageUsecase creates a new instance of messageUsecase. The
// notifier may be nil when push delivery is not configured.
func NewMessageUsecase(messageRepo repository.MessageRepository, pins PinFinder, notifier ReplyNotifier) MessageUsecase {
	return &messageUsecase{
		messageRepo: messageRepo,
		pins:        pins,
		notifier:    notifier,
	}
}

// Post persists a reply to the pin's current creator and fires a push
// notification in the background. A failed push never fails the post.
func (u *messageUsecase) Post(pinID, senderEmail, text, author string) (*domain.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: message text is required", domain.ErrInvalidInput)
	}
	if pinID == "" {
		return nil, fmt.Errorf("%w: pinId is required", domain.ErrInvalidInput)
	}

	// Receiver is the pin's creator at post time; a deleted pin cannot
	// take new replies even though its old replies persist.
	pin, err := u.pins.FindByID(pinID)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, domain.ErrPinNotFound
	}

	message := &domain.Message{
		ID:            uuid.New().String(),
		PinID:         pin.ID,
		SenderEmail:   senderEmail,
		ReceiverEmail: pin.CreatorEmail,
		Text:          trimmed,
		Author:        strings.TrimSpace(author),
		CreatedAt:     time.Now(),
	}

	if err := u.messageRepo.Create(message); err != nil {
		return nil, err
	}

	if u.notifier != nil && !strings.EqualFold(message.SenderEmail, message.ReceiverEmail) {
		go func(m domain.Message) {
			delivered := u.notifier.NotifyReply(m.ReceiverEmail, m.SenderEmail, m.PinID, m.Text, m.ID, m.Author)
			log.Printf("[Messages] Reply %s notified to %d devices", m.ID, delivered)
		}(*message)
	}

	return message, nil
}

func (u *messageUsecase) List(ownerEmail string, box domain.Mailbox) ([]domain.Message, error) {
	switch box {
	case domain.BoxReceived:
		return u.messageRepo.FindByReceiver(ownerEmail)
	case domain.BoxSent:
		return u.messageRepo.FindBySender(ownerEmail)
	default:
		return nil, fmt.Errorf("%w: box must be received or sent", domain.ErrInvalidInput)
	}
}
