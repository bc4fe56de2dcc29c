package domain

import (
	"errors"
	"time"
)

// Message is a reply addressed to a pin's creator. Messages are a
// durable log: they reference the pin they answered but survive its
// expiry or deletion, so ReceiverEmail is snapshotted at creation time.
type Message struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	PinID         string    `json:"pinId" gorm:"index;not null"`
	SenderEmail   string    `json:"senderEmail" gorm:"index;not null"`
	ReceiverEmail string    `json:"receiverEmail" gorm:"index;not null"`
	Text          string    `json:"message" gorm:"not null"`
	Author        string    `json:"author,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Mailbox selects which side of the conversation to list.
type Mailbox string

const (
	BoxReceived Mailbox = "received"
	BoxSent     Mailbox = "sent"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrPinNotFound  = errors.New("pin not found")
)
