package usecase

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"campusboard-backend/internal/pinboard/domain"
	"campusboard-backend/internal/pinboard/repository"

	"github.com/google/uuid"
)

const maxEmojiLength = 10

// ClaimRequest carries the validated-at-the-edge fields of a claim.
type ClaimRequest struct {
	Emoji   string
	Text    string
	Author  string
	GridRow int
	GridCol int
}

// PinUsecase defines the interface for pinboard operations
type PinUsecase interface {
	ListActive(now time.Time) ([]domain.Pin, error)
	Claim(req ClaimRequest, creatorEmail string, now time.Time) (*domain.Pin, error)
	DeleteOwn(pinID, requesterEmail string) error
}

// pinUsecase implements PinUsecase interface
type pinUsecase struct {
	pinRepo repository.PinRepository
	rows    int
	cols    int
	ttl     time.Duration
}

// NewPinUsecase creates a new instance of pinUsecase
func NewPinUsecase(pinRepo repository.PinRepository, rows, cols int, ttl time.Duration) PinUsecase {
	return &pinUsecase{
		pinRepo: pinRepo,
		rows:    rows,
		cols:    cols,
		ttl:     ttl,
	}
}

func (u *pinUsecase) ListActive(now time.Time) ([]domain.Pin, error) {
	return u.pinRepo.FindActive(now, u.ttl, u.rows, u.cols)
}

func (u *pinUsecase) Claim(req ClaimRequest, creatorEmail string, now time.Time) (*domain.Pin, error) {
	emoji := strings.TrimSpace(req.Emoji)
	if emoji == "" {
		return nil, fmt.Errorf("%w: emoji is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(emoji) > maxEmojiLength {
		return nil, fmt.Errorf("%w: emoji must be at most %d characters", domain.ErrInvalidInput, maxEmojiLength)
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	if req.GridRow < 0 || req.GridRow >= u.rows || req.GridCol < 0 || req.GridCol >= u.cols {
		return nil, fmt.Errorf("%w: slot (%d,%d) is outside the %dx%d grid",
			domain.ErrInvalidInput, req.GridRow, req.GridCol, u.rows, u.cols)
	}

	// One live pin per creator. Advisory check ahead of the claim; the
	// hard invariant (one live pin per slot) is enforced by the claim
	// transaction itself.
	liveCount, err := u.pinRepo.CountLiveByCreator(creatorEmail, now, u.ttl)
	if err != nil {
		return nil, err
	}
	if liveCount > 0 {
		return nil, domain.ErrCreatorHasLivePin
	}

	pin := &domain.Pin{
		ID:           uuid.New().String(),
		Emoji:        emoji,
		Text:         text,
		Author:       strings.TrimSpace(req.Author),
		CreatorEmail: creatorEmail,
		GridRow:      req.GridRow,
		GridCol:      req.GridCol,
		CreatedAt:    now,
	}

	if err := u.pinRepo.Claim(pin, u.ttl); err != nil {
		return nil, err
	}
	return pin, nil
}

func (u *pinUsecase) DeleteOwn(pinID, requesterEmail string) error {
	pin, err := u.pinRepo.FindByID(pinID)
	if err != nil {
		return err
	}
	if pin == nil {
		return domain.ErrPinNotFound
	}
	if !strings.EqualFold(pin.CreatorEmail, requesterEmail) {
		return domain.ErrNotOwner
	}
	return u.pinRepo.DeleteByID(pin.ID)
}
