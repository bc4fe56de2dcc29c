package usecase

import (
	"errors"
	"strings"
	"testing"
	"time"

	"campusboard-backend/internal/pinboard/domain"
)

type mockPinRepo struct {
	findActiveFn         func(now time.Time, ttl time.Duration, rows, cols int) ([]domain.Pin, error)
	findByIDFn           func(id string) (*domain.Pin, error)
	claimFn              func(pin *domain.Pin, ttl time.Duration) error
	countLiveByCreatorFn func(email string, now time.Time, ttl time.Duration) (int64, error)
	deleteByIDFn         func(id string) error
	deleteExpiredFn      func(cutoff time.Time) (int64, error)
}

func (m *mockPinRepo) FindActive(now time.Time, ttl time.Duration, rows, cols int) ([]domain.Pin, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(now, ttl, rows, cols)
	}
	return nil, nil
}

func (m *mockPinRepo) FindByID(id string) (*domain.Pin, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return nil, nil
}

func (m *mockPinRepo) Claim(pin *domain.Pin, ttl time.Duration) error {
	if m.claimFn != nil {
		return m.claimFn(pin, ttl)
	}
	return nil
}

func (m *mockPinRepo) CountLiveByCreator(email string, now time.Time, ttl time.Duration) (int64, error) {
	if m.countLiveByCreatorFn != nil {
		return m.countLiveByCreatorFn(email, now, ttl)
	}
	return 0, nil
}

func (m *mockPinRepo) DeleteByID(id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(id)
	}
	return nil
}

func (m *mockPinRepo) DeleteExpired(cutoff time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(cutoff)
	}
	return 0, nil
}

func newTestUsecase(repo *mockPinRepo) PinUsecase {
	return NewPinUsecase(repo, 8, 5, 8*time.Hour)
}

func TestClaim_Success(t *testing.T) {
	var claimed *domain.Pin
	repo := &mockPinRepo{
		claimFn: func(pin *domain.Pin, ttl time.Duration) error {
			claimed = pin
			return nil
		},
	}
	uc := newTestUsecase(repo)

	now := time.Now()
	pin, err := uc.Claim(ClaimRequest{
		Emoji:   "📌",
		Text:    "hi",
		GridRow: 2,
		GridCol: 3,
	}, "a@x.com", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claimed == nil {
		t.Fatal("expected repository Claim to be called")
	}
	if pin.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if !pin.CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt %v, got %v", now, pin.CreatedAt)
	}
	if pin.GridRow != 2 || pin.GridCol != 3 {
		t.Fatalf("unexpected slot (%d,%d)", pin.GridRow, pin.GridCol)
	}
	if pin.CreatorEmail != "a@x.com" {
		t.Fatalf("unexpected creator %q", pin.CreatorEmail)
	}
}

func TestClaim_Validation(t *testing.T) {
	uc := newTestUsecase(&mockPinRepo{
		claimFn: func(pin *domain.Pin, ttl time.Duration) error {
			t.Fatal("Claim must not reach the repository on invalid input")
			return nil
		},
	})
	now := time.Now()

	cases := []struct {
		name string
		req  ClaimRequest
	}{
		{"empty emoji", ClaimRequest{Emoji: "  ", Text: "hi", GridRow: 0, GridCol: 0}},
		{"emoji too long", ClaimRequest{Emoji: strings.Repeat("x", 11), Text: "hi", GridRow: 0, GridCol: 0}},
		{"empty text", ClaimRequest{Emoji: "📌", Text: "   ", GridRow: 0, GridCol: 0}},
		{"row below bounds", ClaimRequest{Emoji: "📌", Text: "hi", GridRow: -1, GridCol: 0}},
		{"row above bounds", ClaimRequest{Emoji: "📌", Text: "hi", GridRow: 8, GridCol: 0}},
		{"col above bounds", ClaimRequest{Emoji: "📌", Text: "hi", GridRow: 0, GridCol: 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Claim(tc.req, "a@x.com", now)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestClaim_EmojiLengthCountsRunes(t *testing.T) {
	repo := &mockPinRepo{}
	uc := newTestUsecase(repo)

	// Ten multi-byte emoji are within the limit even though the byte
	// count is far above ten.
	_, err := uc.Claim(ClaimRequest{
		Emoji:   strings.Repeat("🎉", 10),
		Text:    "party",
		GridRow: 0,
		GridCol: 0,
	}, "a@x.com", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClaim_SlotOccupied(t *testing.T) {
	repo := &mockPinRepo{
		claimFn: func(pin *domain.Pin, ttl time.Duration) error {
			return domain.ErrSlotOccupied
		},
	}
	uc := newTestUsecase(repo)

	_, err := uc.Claim(ClaimRequest{Emoji: "🎈", Text: "party2", GridRow: 0, GridCol: 0}, "b@x.com", time.Now())
	if !errors.Is(err, domain.ErrSlotOccupied) {
		t.Fatalf("expected ErrSlotOccupied, got %v", err)
	}
}

func TestClaim_CreatorAlreadyHasLivePin(t *testing.T) {
	repo := &mockPinRepo{
		countLiveByCreatorFn: func(email string, now time.Time, ttl time.Duration) (int64, error) {
			return 1, nil
		},
		claimFn: func(pin *domain.Pin, ttl time.Duration) error {
			t.Fatal("Claim must not reach the repository when the creator has a live pin")
			return nil
		},
	}
	uc := newTestUsecase(repo)

	_, err := uc.Claim(ClaimRequest{Emoji: "📌", Text: "hi", GridRow: 1, GridCol: 1}, "a@x.com", time.Now())
	if !errors.Is(err, domain.ErrCreatorHasLivePin) {
		t.Fatalf("expected ErrCreatorHasLivePin, got %v", err)
	}
}

func TestDeleteOwn(t *testing.T) {
	pin := &domain.Pin{ID: "p1", CreatorEmail: "Owner@X.com"}

	t.Run("creator deletes", func(t *testing.T) {
		var deletedID string
		repo := &mockPinRepo{
			findByIDFn: func(id string) (*domain.Pin, error) { return pin, nil },
			deleteByIDFn: func(id string) error {
				deletedID = id
				return nil
			},
		}
		uc := newTestUsecase(repo)
		if err := uc.DeleteOwn("p1", "owner@x.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deletedID != "p1" {
			t.Fatalf("expected delete of p1, got %q", deletedID)
		}
	})

	t.Run("non-creator forbidden", func(t *testing.T) {
		repo := &mockPinRepo{
			findByIDFn: func(id string) (*domain.Pin, error) { return pin, nil },
			deleteByIDFn: func(id string) error {
				t.Fatal("delete must not happen for a non-creator")
				return nil
			},
		}
		uc := newTestUsecase(repo)
		if err := uc.DeleteOwn("p1", "intruder@x.com"); !errors.Is(err, domain.ErrNotOwner) {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("missing pin", func(t *testing.T) {
		repo := &mockPinRepo{
			findByIDFn: func(id string) (*domain.Pin, error) { return nil, nil },
		}
		uc := newTestUsecase(repo)
		if err := uc.DeleteOwn("gone", "owner@x.com"); !errors.Is(err, domain.ErrPinNotFound) {
			t.Fatalf("expected ErrPinNotFound, got %v", err)
		}
	})
}

func TestListActive_PassesConfiguredBounds(t *testing.T) {
	var gotRows, gotCols int
	var gotTTL time.Duration
	repo := &mockPinRepo{
		findActiveFn: func(now time.Time, ttl time.Duration, rows, cols int) ([]domain.Pin, error) {
			gotRows, gotCols, gotTTL = rows, cols, ttl
			return []domain.Pin{{ID: "p1"}}, nil
		},
	}
	uc := newTestUsecase(repo)

	pins, err := uc.ListActive(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pins) != 1 {
		t.Fatalf("expected 1 pin, got %d", len(pins))
	}
	if gotRows != 8 || gotCols != 5 || gotTTL != 8*time.Hour {
		t.Fatalf("unexpected bounds passed to repository: %d %d %v", gotRows, gotCols, gotTTL)
	}
}
