package domain

import (
	"errors"
	"time"
)

// Pin is one ephemeral note on the shared grid. A slot (grid_row,
// grid_col) holds at most one row at a time; the unique index backs the
// claim operation's mutual exclusion.
type Pin struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Emoji        string    `json:"emoji" gorm:"not null"`
	Text         string    `json:"text" gorm:"not null"`
	Author       string    `json:"author,omitempty"`
	CreatorEmail string    `json:"creatorEmail" gorm:"index;not null"`
	GridRow      int       `json:"gridRow" gorm:"not null;uniqueIndex:idx_pins_slot"`
	GridCol      int       `json:"gridCol" gorm:"not null;uniqueIndex:idx_pins_slot"`
	CreatedAt    time.Time `json:"createdAt"`
}

var (
	// ErrInvalidInput wraps validation failures; the delivery layer
	// maps it to 400 with the wrapped detail.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSlotOccupied means a live pin already holds the target slot.
	ErrSlotOccupied = errors.New("slot already occupied")

	// ErrCreatorHasLivePin means the caller already has a live pin on
	// the board.
	ErrCreatorHasLivePin = errors.New("you already have a live pin on the board")

	ErrPinNotFound = errors.New("pin not found")
	ErrNotOwner    = errors.New("only the pin's creator can delete it")
)
